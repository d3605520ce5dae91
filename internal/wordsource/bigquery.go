package wordsource

import (
	"context"
	"fmt"
	"regexp"

	"cloud.google.com/go/bigquery"
	"go.uber.org/multierr"
	"google.golang.org/api/iterator"
)

// BigQuery reads scoped word lists from a BigQuery table with the columns
// word_key (STRING), obscure (BOOL) and scope (STRING).
type BigQuery struct {
	Project  string
	Table    string // project.dataset.table
	Location string
}

var tableName = regexp.MustCompile(`^[A-Za-z0-9_\-]+(\.[A-Za-z0-9_\-]+){1,2}$`)

func (s BigQuery) query(includeObscure bool) (string, error) {
	if !tableName.MatchString(s.Table) {
		return "", fmt.Errorf("invalid table name %q", s.Table)
	}
	obscure := "false"
	if includeObscure {
		obscure = "false, true"
	}
	return fmt.Sprintf("SELECT word_key, obscure FROM `%s` WHERE scope = @scope AND obscure IN (%s)", s.Table, obscure), nil
}

// Words returns the regular and, if requested, obscure words of scope.
func (s BigQuery) Words(ctx context.Context, scope string, includeObscure bool) (regular, obscure []string, err error) {
	query, err := s.query(includeObscure)
	if err != nil {
		return nil, nil, err
	}

	client, err := bigquery.NewClient(ctx, s.Project)
	if err != nil {
		return nil, nil, fmt.Errorf("bigquery.NewClient: %w", err)
	}
	defer func() {
		err = multierr.Append(err, client.Close())
	}()

	q := client.Query(query)
	q.Parameters = []bigquery.QueryParameter{{Name: "scope", Value: scope}}
	if s.Location != "" {
		q.Location = s.Location
	}

	job, err := q.Run(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("q.Run: %w", err)
	}
	status, err := job.Wait(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("job.Wait: %w", err)
	}
	if err := status.Err(); err != nil {
		return nil, nil, fmt.Errorf("status.Err: %w", err)
	}
	it, err := job.Read(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("job.Read: %w", err)
	}

	for {
		var row []bigquery.Value
		err := it.Next(&row)
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, nil, fmt.Errorf("it.Next: %w", err)
		}

		word, isObscure, err := parseRow(row)
		if err != nil {
			return nil, nil, err
		}
		if isObscure {
			obscure = append(obscure, word)
		} else {
			regular = append(regular, word)
		}
	}
	return regular, obscure, nil
}

func parseRow(row []bigquery.Value) (string, bool, error) {
	if len(row) < 2 {
		return "", false, fmt.Errorf("row has %d columns, want 2", len(row))
	}
	word, ok := row[0].(string)
	if !ok {
		return "", false, fmt.Errorf("row[0] is not a string: %v", row[0])
	}
	isObscure, ok := row[1].(bool)
	if !ok {
		return "", false, fmt.Errorf("row[1] is not a bool: %v", row[1])
	}
	return word, isObscure, nil
}
