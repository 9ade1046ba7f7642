package tourmarket

import (
	"context"
	"fmt"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
)

// DBRunner defines the interface for a generic query executor.
// It abstracts the execution of a Cypher query so that collections can be
// exercised against a fake in tests.
type DBRunner interface {
	// Run executes a given Cypher query with parameters and returns a fully-buffered result.
	Run(ctx context.Context, query string, params map[string]interface{}) (*neo4j.EagerResult, error)
}

//---

// Neo4jExecutor is the DBRunner backed by the official Neo4j Go driver.
// It manages the driver instance and the target database name.
type Neo4jExecutor struct {
	Driver neo4j.DriverWithContext
	DBName string
}

// NewNeo4jExecutor creates a driver for the given instance. It does not
// contact the server; call Verify for that.
//
// Parameters:
//   - uri: The connection URI for the Neo4j instance (e.g., "neo4j://localhost:7687").
//   - username: The username for authentication.
//   - password: The password for authentication.
//   - dbName: The name of the database to connect to (e.g., "neo4j").
func NewNeo4jExecutor(uri, username, password, dbName string) (*Neo4jExecutor, error) {
	driver, err := neo4j.NewDriverWithContext(uri, neo4j.BasicAuth(username, password, ""))
	if err != nil {
		return nil, fmt.Errorf("could not create Neo4j driver: %w", err)
	}
	return &Neo4jExecutor{Driver: driver, DBName: dbName}, nil
}

// Verify checks the connectivity to the Neo4j database.
func (e *Neo4jExecutor) Verify(ctx context.Context) error {
	return e.Driver.VerifyConnectivity(ctx)
}

// Close releases the driver and its connection pool.
func (e *Neo4jExecutor) Close(ctx context.Context) error {
	return e.Driver.Close(ctx)
}

// Run executes a Cypher query with ExecuteQuery, which handles session and
// transaction management. Driver failures come back as *TransportError carrying
// the driver's message unchanged.
func (e *Neo4jExecutor) Run(ctx context.Context, query string, params map[string]interface{}) (*neo4j.EagerResult, error) {
	result, err := neo4j.ExecuteQuery(
		ctx,
		e.Driver,
		query,
		params,
		neo4j.EagerResultTransformer, // Buffers all results in memory before returning.
		neo4j.ExecuteQueryWithDatabase(e.DBName),
	)
	if err != nil {
		return nil, &TransportError{Op: "run", Err: err}
	}
	return result, nil
}
