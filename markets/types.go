package markets

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
)

// Event is a Gamma event. Only the fields the consolidator needs are typed.
type Event struct {
	ID        string          `json:"id"`
	Title     string          `json:"title"`
	Slug      string          `json:"slug"`
	Volume    decimal.Decimal `json:"volume"`
	Liquidity decimal.Decimal `json:"liquidity"`
	Markets   []Market        `json:"markets"`
}

// Summary is the parent-event stamp carried by every consolidated market.
func (e *Event) Summary() EventSummary {
	return EventSummary{
		ID:        e.ID,
		Title:     e.Title,
		Slug:      e.Slug,
		Volume:    e.Volume,
		Liquidity: e.Liquidity,
	}
}

type EventSummary struct {
	ID        string
	Title     string
	Slug      string
	Volume    decimal.Decimal
	Liquidity decimal.Decimal
}

// MarshalJSON writes volume and liquidity as JSON numbers, as Gamma does.
func (s EventSummary) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		ID        string      `json:"id"`
		Title     string      `json:"title"`
		Slug      string      `json:"slug"`
		Volume    json.Number `json:"volume"`
		Liquidity json.Number `json:"liquidity"`
	}{
		ID:        s.ID,
		Title:     s.Title,
		Slug:      s.Slug,
		Volume:    json.Number(s.Volume.String()),
		Liquidity: json.Number(s.Liquidity.String()),
	})
}

// Market is a Gamma market. Upstream fields are passed through untouched apart
// from "events", which is replaced by the consolidator's stamp.
type Market struct {
	ID     string
	Active bool
	Closed bool
	Events []EventSummary

	fields map[string]json.RawMessage
}

func (m *Market) UnmarshalJSON(data []byte) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}

	id, err := rawID(fields["id"])
	if err != nil {
		return fmt.Errorf("market id: %w", err)
	}

	*m = Market{ID: id, fields: fields}
	if raw, ok := fields["active"]; ok {
		if err := json.Unmarshal(raw, &m.Active); err != nil {
			return fmt.Errorf("market %s active: %w", id, err)
		}
	}
	if raw, ok := fields["closed"]; ok {
		if err := json.Unmarshal(raw, &m.Closed); err != nil {
			return fmt.Errorf("market %s closed: %w", id, err)
		}
	}
	return nil
}

func (m Market) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(m.fields)+4)
	for k, v := range m.fields {
		out[k] = v
	}
	out["id"] = m.ID
	out["active"] = m.Active
	out["closed"] = m.Closed
	if m.Events != nil {
		out["events"] = m.Events
	}
	return json.Marshal(out)
}

// Field returns an upstream field as raw JSON, or nil when absent.
func (m *Market) Field(name string) json.RawMessage {
	return m.fields[name]
}

// rawID accepts ids sent either as strings or as numbers.
func rawID(raw json.RawMessage) (string, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return "", nil
	}
	if raw[0] == '"' {
		var s string
		err := json.Unmarshal(raw, &s)
		return s, err
	}
	var n json.Number
	if err := json.Unmarshal(raw, &n); err != nil {
		return "", err
	}
	return n.String(), nil
}
