package lh

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"linkloft-admin/internal/core/bulk"
)

// bulkFrame is one newline-delimited JSON frame of a bulk stream.
type bulkFrame struct {
	Type    string `json:"type"` // start | item | complete
	Total   int    `json:"total,omitempty"`
	ID      string `json:"id,omitempty"`
	Status  string `json:"status,omitempty"`
	Message string `json:"message,omitempty"`
	Success int    `json:"success,omitempty"`
	Failed  int    `json:"failed,omitempty"`
}

// BulkConsumer adapts the streaming bulk endpoint to the engine's Consumer
// contract.
type BulkConsumer struct {
	c *Client
}

// Bulk returns the client's stream consumer.
func (c *Client) Bulk() *BulkConsumer { return &BulkConsumer{c: c} }

// Start opens the stream and forwards decoded events to onEvent until the
// complete frame, a transport failure, or context cancellation. See the
// bulk.Consumer contract for the error semantics.
func (bc *BulkConsumer) Start(ctx context.Context, action bulk.Action, ids []string, onEvent func(bulk.Event)) (bulk.Summary, error) {
	if len(ids) == 0 {
		return bulk.Summary{}, bulk.ErrNoItems
	}

	body, err := json.Marshal(struct {
		IDs []string `json:"ids"`
	}{IDs: ids})
	if err != nil {
		return bulk.Summary{}, err
	}
	req, err := bc.c.newRequest(ctx, http.MethodPost, "/api/v1/bookmarks/bulk/"+string(action), bytes.NewReader(body))
	if err != nil {
		return bulk.Summary{}, err
	}
	req.Header.Set("Accept", "application/x-ndjson")

	res, err := bc.c.stream.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return bulk.Summary{}, ctx.Err()
		}
		return bulk.Summary{}, err
	}
	defer res.Body.Close()
	if res.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(res.Body, 512))
		return bulk.Summary{}, fmt.Errorf("bulk %s: status %s: %s", action, res.Status, bytes.TrimSpace(msg))
	}

	dec := json.NewDecoder(res.Body)
	for {
		if err := ctx.Err(); err != nil {
			return bulk.Summary{}, err
		}
		var f bulkFrame
		if err := dec.Decode(&f); err != nil {
			// the body read fails once the context cancels the connection;
			// report that as a cancellation, not a transport error
			if ctx.Err() != nil {
				return bulk.Summary{}, ctx.Err()
			}
			if errors.Is(err, io.EOF) {
				return bulk.Summary{}, errors.New("bulk stream ended without complete frame")
			}
			return bulk.Summary{}, fmt.Errorf("bulk stream: malformed frame: %w", err)
		}
		switch f.Type {
		case "start":
			onEvent(bulk.StartEvent{Total: f.Total})
		case "item":
			status, err := itemStatusFromWire(f.Status)
			if err != nil {
				return bulk.Summary{}, fmt.Errorf("bulk stream: %w", err)
			}
			onEvent(bulk.ItemEvent{ID: f.ID, Status: status, Message: f.Message})
		case "complete":
			onEvent(bulk.CompleteEvent{Success: f.Success, Failed: f.Failed})
			return bulk.Summary{Success: f.Success, Failed: f.Failed}, nil
		default:
			return bulk.Summary{}, fmt.Errorf("bulk stream: unknown frame type %q", f.Type)
		}
	}
}

func itemStatusFromWire(s string) (bulk.ItemStatus, error) {
	switch s {
	case "pending":
		return bulk.ItemPending, nil
	case "running":
		return bulk.ItemRunning, nil
	case "success", "succeeded":
		return bulk.ItemSucceeded, nil
	case "failure", "failed":
		return bulk.ItemFailed, nil
	default:
		return "", fmt.Errorf("unknown item status %q", s)
	}
}
