package graph

import (
	"context"
	"fmt"

	"git.solsynth.dev/hypernet/arcade/pkg/internal/events"
	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"github.com/rs/zerolog/log"
)

// Runner executes one Cypher statement.
type Runner interface {
	Run(ctx context.Context, query string, params map[string]any) (*neo4j.EagerResult, error)
}

type Neo4jRunner struct {
	Driver   neo4j.DriverWithContext
	Database string
}

func NewNeo4jRunner(uri, username, password, database string) (*Neo4jRunner, error) {
	driver, err := neo4j.NewDriverWithContext(uri, neo4j.BasicAuth(username, password, ""))
	if err != nil {
		return nil, fmt.Errorf("unable to create neo4j driver: %v", err)
	}
	return &Neo4jRunner{Driver: driver, Database: database}, nil
}

func (v *Neo4jRunner) Run(ctx context.Context, query string, params map[string]any) (*neo4j.EagerResult, error) {
	result, err := neo4j.ExecuteQuery(ctx, v.Driver, query, params,
		neo4j.EagerResultTransformer,
		neo4j.ExecuteQueryWithDatabase(v.Database),
	)
	if err != nil {
		return nil, fmt.Errorf("unable to run cypher: %v", err)
	}
	return result, nil
}

func (v *Neo4jRunner) Close(ctx context.Context) error {
	return v.Driver.Close(ctx)
}

// Projector mirrors the follow, like and comment edges into the graph.
type Projector struct {
	runner Runner
}

func NewProjector(runner Runner) *Projector {
	return &Projector{runner: runner}
}

func (v *Projector) Handle(ctx context.Context, evt events.Engagement) error {
	query, params, ok := BuildStatement(evt)
	if !ok {
		return nil
	}
	log.Debug().Str("topic", evt.Topic).Str("subject", evt.SubjectID).Msg("Projecting engagement into graph...")
	_, err := v.runner.Run(ctx, query, params)
	return err
}

// BuildStatement returns the Cypher statement for an event, or false when
// the event has no graph counterpart.
func BuildStatement(evt events.Engagement) (string, map[string]any, bool) {
	params := map[string]any{
		"actor":   evt.ActorID,
		"subject": evt.SubjectID,
	}

	var label, rel string
	switch evt.Topic {
	case events.TopicFollowToggled:
		label, rel = "Author", "FOLLOWS"
	case events.TopicGameFollowToggled:
		label, rel = "Game", "FOLLOWS"
	case events.TopicLikeToggled:
		label, rel = "Post", "LIKES"
	case events.TopicCommentAdded:
		params["comment"] = evt.TargetID
		return "MERGE (a:Author {id: $actor}) " +
			"MERGE (p:Post {id: $subject}) " +
			"MERGE (a)-[:COMMENTED {comment: $comment}]->(p)", params, true
	case events.TopicCommentDeleted:
		params = map[string]any{"subject": evt.SubjectID, "comment": evt.TargetID}
		return "MATCH ()-[r:COMMENTED {comment: $comment}]->(:Post {id: $subject}) DELETE r", params, true
	default:
		return "", nil, false
	}

	if evt.Active {
		return fmt.Sprintf("MERGE (a:Author {id: $actor}) "+
			"MERGE (s:%s {id: $subject}) "+
			"MERGE (a)-[:%s]->(s)", label, rel), params, true
	}
	return fmt.Sprintf("MATCH (:Author {id: $actor})-[r:%s]->(:%s {id: $subject}) DELETE r", rel, label), params, true
}
