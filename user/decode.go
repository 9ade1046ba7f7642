package user

import (
	"time"

	"github.com/saulfrancisco-ruizacevedo/go-tourmarket"
	"github.com/saulfrancisco-ruizacevedo/go-tourmarket/models"
)

// Decode builds a fully populated user from a document. Missing numbers become
// 0, strings "", lists empty, gender Other, user type tourist and the
// registration date now(). Travel history entries without a name or date are dropped.
func Decode(doc tourmarket.Document, now func() time.Time) models.User {
	u := models.User{
		ID:                text(doc, "id"),
		Name:              text(doc, "name"),
		Email:             text(doc, "email"),
		PhoneNumber:       text(doc, "phoneNumber"),
		UsersPostCount:    number(doc, "usersPostCount"),
		UsersCommentCount: number(doc, "usersCommentCount"),
		UsersRating:       number(doc, "usersRating"),
		UsersLocation:     text(doc, "usersLocation"),
		UsersDegree:       text(doc, "usersDegree"),
		KnownLanguages:    []string{},
		TravelHistory:     []models.Place{},
		Gender:            parseGender(text(doc, "gender")),
		UserType:          parseUserType(text(doc, "userType")),
	}

	if t, ok := doc.Time("registrationDate"); ok {
		u.RegistrationDate = t
	} else {
		u.RegistrationDate = now()
	}
	if langs, ok := doc.Strings("knownLanguages"); ok {
		u.KnownLanguages = langs
	}
	if places, ok := doc.Documents("travelHistory"); ok {
		for _, p := range places {
			name, ok1 := p.Text("name")
			visited, ok2 := p.Time("dateVisited")
			if !ok1 || !ok2 {
				continue
			}
			u.TravelHistory = append(u.TravelHistory, models.Place{Name: name, DateVisited: visited})
		}
	}
	if url, ok := doc.Text("imageURL"); ok && url != "" {
		u.ImageURL = &url
	}
	return u
}

func text(doc tourmarket.Document, key string) string {
	s, _ := doc.Text(key)
	return s
}

func number(doc tourmarket.Document, key string) int {
	n, _ := doc.Int(key)
	return int(n)
}

func parseGender(s string) models.Gender {
	switch g := models.Gender(s); g {
	case models.GenderMale, models.GenderFemale, models.GenderOther:
		return g
	}
	return models.GenderOther
}

func parseUserType(s string) models.UserType {
	switch t := models.UserType(s); t {
	case models.UserTypeTourist, models.UserTypeGuide:
		return t
	}
	return models.UserTypeTourist
}
