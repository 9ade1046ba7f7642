package tourmarket

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"github.com/saulfrancisco-ruizacevedo/gocypher"
)

const (
	// idProp is the node property that holds the document id.
	idProp = "id"
	// embeddedProp lists the properties stored as JSON text. Neo4j properties
	// cannot hold maps, so embedded documents are serialized.
	embeddedProp = "_embedded"
)

// NodeCollection stores the documents of one collection as nodes carrying the
// collection name as their label.
type NodeCollection struct {
	runner DBRunner
	label  string
}

// NewNodeCollection creates a collection over the given runner.
func NewNodeCollection(runner DBRunner, label string) *NodeCollection {
	return &NodeCollection{runner: runner, label: label}
}

// Set creates the node or replaces every property of the existing one.
func (c *NodeCollection) Set(ctx context.Context, id string, doc Document) error {
	props, embedded, err := toProps(doc)
	if err != nil {
		return err
	}
	props[idProp] = id
	if len(embedded) > 0 {
		props[embeddedProp] = embedded
	}
	query := fmt.Sprintf("MERGE (n:%s {%s: $id}) SET n = $props RETURN n", quoteLabel(c.label), idProp)
	_, err = c.runner.Run(ctx, query, map[string]interface{}{"id": id, "props": props})
	return err
}

// Update merges fields into an existing node. Nil values remove the property.
func (c *NodeCollection) Update(ctx context.Context, id string, fields Document) error {
	props, embedded, err := toProps(fields)
	if err != nil {
		return err
	}
	props[idProp] = id

	var b strings.Builder
	fmt.Fprintf(&b, "MATCH (n:%s {%s: $id}) SET n += $props", quoteLabel(c.label), idProp)
	params := map[string]interface{}{"id": id, "props": props}
	if len(embedded) > 0 {
		b.WriteString(", n." + embeddedProp + " = coalesce(n." + embeddedProp + ", []) + " +
			"[k IN $embedded WHERE NOT k IN coalesce(n." + embeddedProp + ", [])]")
		params["embedded"] = embedded
	}
	b.WriteString(" RETURN n")

	result, err := c.runner.Run(ctx, b.String(), params)
	if err != nil {
		return err
	}
	if len(result.Records) == 0 {
		return ErrNotFound
	}
	return nil
}

// Get retrieves a single document by id.
func (c *NodeCollection) Get(ctx context.Context, id string) (Document, error) {
	docs, err := c.find(ctx, map[string]interface{}{idProp: id})
	if err != nil {
		return nil, err
	}
	if len(docs) == 0 {
		return nil, ErrNotFound
	}
	if len(docs) > 1 {
		// A primary key lookup should be unique.
		return nil, fmt.Errorf("expected 1 document with id %q but found %d", id, len(docs))
	}
	return docs[0], nil
}

// Delete removes the node and its relationships.
func (c *NodeCollection) Delete(ctx context.Context, id string) error {
	query, params, err := gocypher.NewQueryBuilder().
		Match(gocypher.N("n", c.label).WithProperties(map[string]interface{}{idProp: id})).
		DetachDelete("n").
		Build()
	if err != nil {
		return err
	}
	_, err = c.runner.Run(ctx, query, params)
	return err
}

// Where returns the documents whose field equals value.
func (c *NodeCollection) Where(ctx context.Context, field string, value interface{}) ([]Document, error) {
	return c.find(ctx, map[string]interface{}{field: value})
}

// All returns every document of the collection.
func (c *NodeCollection) All(ctx context.Context) ([]Document, error) {
	return c.find(ctx, nil)
}

// CountWhere counts the documents whose field equals value.
func (c *NodeCollection) CountWhere(ctx context.Context, field string, value interface{}) (int64, error) {
	query, params, err := gocypher.NewQueryBuilder().
		Match(gocypher.N("n", c.label).WithProperties(map[string]interface{}{field: value})).
		Return("count(n) AS total").
		Build()
	if err != nil {
		return 0, err
	}
	result, err := c.runner.Run(ctx, query, params)
	if err != nil {
		return 0, err
	}
	if len(result.Records) == 0 || len(result.Records[0].Values) == 0 {
		return 0, nil
	}
	total, ok := result.Records[0].Values[0].(int64)
	if !ok {
		return 0, fmt.Errorf("count returned %T", result.Records[0].Values[0])
	}
	return total, nil
}

func (c *NodeCollection) find(ctx context.Context, props map[string]interface{}) ([]Document, error) {
	node := gocypher.N("n", c.label)
	if len(props) > 0 {
		node = node.WithProperties(props)
	}
	query, params, err := gocypher.NewQueryBuilder().
		Match(node).
		Return("n").
		Build()
	if err != nil {
		return nil, err
	}
	result, err := c.runner.Run(ctx, query, params)
	if err != nil {
		return nil, err
	}

	docs := make([]Document, 0, len(result.Records))
	for _, record := range result.Records {
		value, ok := record.Get("n")
		if !ok {
			return nil, fmt.Errorf("could not find return value 'n' in query result")
		}
		n, ok := value.(neo4j.Node)
		if !ok {
			return nil, fmt.Errorf("return value 'n' is not a node")
		}
		docs = append(docs, fromProps(n.Props))
	}
	return docs, nil
}

// toProps turns a document into node properties, serializing embedded documents.
func toProps(doc Document) (map[string]interface{}, []string, error) {
	props := make(map[string]interface{}, len(doc))
	var embedded []string
	for k, v := range doc {
		if !isEmbedded(v) {
			props[k] = v
			continue
		}
		text, err := json.Marshal(v)
		if err != nil {
			return nil, nil, fmt.Errorf("encode embedded %s: %w", k, err)
		}
		props[k] = string(text)
		embedded = append(embedded, k)
	}
	return props, embedded, nil
}

// fromProps restores a document from node properties.
func fromProps(props map[string]interface{}) Document {
	doc := make(Document, len(props))
	for k, v := range props {
		doc[k] = v
	}
	keys, _ := doc[embeddedProp].([]interface{})
	delete(doc, embeddedProp)
	for _, k := range keys {
		name, _ := k.(string)
		text, ok := doc[name].(string)
		if !ok {
			continue
		}
		var v interface{}
		if err := json.Unmarshal([]byte(text), &v); err == nil {
			doc[name] = v
		}
	}
	return doc
}

func isEmbedded(v interface{}) bool {
	switch t := v.(type) {
	case Document, map[string]interface{}:
		return true
	case []interface{}:
		for _, e := range t {
			if isEmbedded(e) {
				return true
			}
		}
	case []Document, []map[string]interface{}:
		return true
	}
	return false
}

func quoteLabel(label string) string {
	return "`" + strings.ReplaceAll(label, "`", "``") + "`"
}
