// Package models contains the domain records of the marketplace.
// The `doc` struct tags map each record to its document in the remote store.
package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Post is a listing published by a tourist. OwnerID is fixed at creation and
// never reassigned.
type Post struct {
	ID          string          `doc:"id" json:"id"`
	Title       string          `doc:"title" json:"title"`
	Description string          `doc:"description" json:"description"`
	OwnerID     string          `doc:"ownerID" json:"ownerID"`
	Date        time.Time       `doc:"date" json:"date"`
	Location    string          `doc:"location" json:"location"`
	IsActive    bool            `doc:"isActive" json:"isActive"`
	Price       decimal.Decimal `doc:"price" json:"price"`
	ImageURL    *string         `doc:"imageURL" json:"imageURL,omitempty"`
}

// PriceString formats the price as US dollars, e.g. "$1200.00".
func (p Post) PriceString() string {
	return "$" + p.Price.StringFixed(2)
}

// Gender values as stored.
type Gender string

const (
	GenderMale   Gender = "Male"
	GenderFemale Gender = "Female"
	GenderOther  Gender = "Other"
)

// UserType decides which flows a user gets. It never changes after registration.
type UserType string

const (
	UserTypeTourist UserType = "tourist"
	UserTypeGuide   UserType = "guide"
)

// Place is an entry of a user's travel history.
type Place struct {
	Name        string    `doc:"name" json:"name"`
	DateVisited time.Time `doc:"dateVisited" json:"dateVisited"`
}

// User is a registered tourist or guide. Its id is the identity provider subject.
//
// The counters are best-effort aggregates set by whoever writes the profile;
// no post or application operation maintains them.
type User struct {
	ID                string    `doc:"id" json:"id"`
	Name              string    `doc:"name" json:"name"`
	Email             string    `doc:"email" json:"email"`
	PhoneNumber       string    `doc:"phoneNumber" json:"phoneNumber"`
	RegistrationDate  time.Time `doc:"registrationDate" json:"registrationDate"`
	UsersPostCount    int       `doc:"usersPostCount" json:"usersPostCount"`
	UsersCommentCount int       `doc:"usersCommentCount" json:"usersCommentCount"`
	UsersRating       int       `doc:"usersRating" json:"usersRating"`
	UsersLocation     string    `doc:"usersLocation" json:"usersLocation"`
	UsersDegree       string    `doc:"usersDegree" json:"usersDegree"`
	KnownLanguages    []string  `doc:"knownLanguages" json:"knownLanguages"`
	Gender            Gender    `doc:"gender" json:"gender"`
	TravelHistory     []Place   `doc:"travelHistory" json:"travelHistory"`
	UserType          UserType  `doc:"userType" json:"userType"`
	ImageURL          *string   `doc:"imageURL,omitempty" json:"imageURL,omitempty"`
}

// ApplicationStatus is the state of a guide's application.
type ApplicationStatus string

const (
	StatusPending  ApplicationStatus = "pending"
	StatusAccepted ApplicationStatus = "accepted"
	StatusRejected ApplicationStatus = "rejected"
)

// Terminal reports whether no further transition is allowed.
func (s ApplicationStatus) Terminal() bool {
	return s == StatusAccepted || s == StatusRejected
}

// Application is a guide applying to a post.
type Application struct {
	ID      string            `doc:"id" json:"id"`
	PostID  string            `doc:"postId" json:"postId"`
	GuideID string            `doc:"guideId" json:"guideId"`
	Status  ApplicationStatus `doc:"status" json:"status"`
}

// Notification is shown locally and never stored remotely.
type Notification struct {
	ID      string    `json:"id"`
	Title   string    `json:"title"`
	Message string    `json:"message"`
	Date    time.Time `json:"date"`
	IsRead  bool      `json:"isRead"`
}

// Coordinate is a point on the map.
type Coordinate struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// NewNotification creates an unread notification dated at.
func NewNotification(title, message string, at time.Time) Notification {
	return Notification{ID: uuid.NewString(), Title: title, Message: message, Date: at}
}
