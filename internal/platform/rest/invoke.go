package rest

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/haskel/mlpipe/internal/dataset"
	"github.com/haskel/mlpipe/internal/platform"
)

// Invoke sends feature rows to an in-service endpoint as text/csv and
// parses one numeric prediction per row from the text/csv response.
// Batches whose serialized payload exceeds the configured cap are
// split into several sequential requests; predictions are concatenated
// in request order, so the caller still sees exactly one prediction
// per input row, in input order.
func (c *Client) Invoke(ctx context.Context, name string, rows [][]float64) ([]float64, error) {
	if len(rows) == 0 {
		return nil, nil
	}

	predictions := make([]float64, 0, len(rows))

	for start := 0; start < len(rows); {
		payload, consumed := c.buildPayload(rows[start:])

		chunk, err := c.invokeOnce(ctx, name, payload, consumed)
		if err != nil {
			return nil, err
		}

		predictions = append(predictions, chunk...)
		start += consumed
	}

	return predictions, nil
}

// buildPayload serializes as many rows as fit under the payload cap,
// always at least one so a single oversized row still goes out.
func (c *Client) buildPayload(rows [][]float64) ([]byte, int) {
	var b strings.Builder
	consumed := 0

	for _, row := range rows {
		line := dataset.FormatFeatureRow(row) + "\n"
		if consumed > 0 && b.Len()+len(line) > c.maxPayloadBytes {
			break
		}
		b.WriteString(line)
		consumed++
	}

	return []byte(b.String()), consumed
}

func (c *Client) invokeOnce(ctx context.Context, name string, payload []byte, expect int) ([]float64, error) {
	data, status, err := c.postCSV(ctx, "/v1/endpoints/"+name+"/invocations", payload)
	if err != nil {
		return nil, fmt.Errorf("%w: invoking %s: %w", platform.ErrInference, name, err)
	}
	if status != http.StatusOK {
		return nil, fmt.Errorf("%w: endpoint %s returned status %d: %s", platform.ErrInference, name, status, data)
	}

	predictions, err := parsePredictions(string(data))
	if err != nil {
		return nil, fmt.Errorf("%w: endpoint %s: %w", platform.ErrInference, name, err)
	}

	if len(predictions) != expect {
		return nil, fmt.Errorf("%w: endpoint %s returned %d predictions for %d rows", platform.ErrInference, name, len(predictions), expect)
	}

	return predictions, nil
}

func parsePredictions(body string) ([]float64, error) {
	var predictions []float64

	for i, line := range strings.Split(strings.TrimSpace(body), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		v, err := strconv.ParseFloat(line, 64)
		if err != nil {
			return nil, fmt.Errorf("malformed prediction on line %d: %q", i+1, line)
		}
		predictions = append(predictions, v)
	}

	return predictions, nil
}
