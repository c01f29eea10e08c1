package election

import (
	"bytes"
	"encoding/json"
	"fmt"
	"slices"
)

// VoteCount is one party's (or the poll's total) tally at a single poll.
type VoteCount struct {
	Eday    int `json:"eday"`
	Advance int `json:"advance"`
	Total   int `json:"total"`
}

// Votes returns the count used for vote shares: Total when advance votes
// are included, Eday otherwise.
func (v VoteCount) Votes(advance bool) int {
	if advance {
		return v.Total
	}
	return v.Eday
}

// Label is an identifier encoded either as a JSON string or a JSON number.
type Label string

// UnmarshalJSON accepts strings, numbers and null.
func (l *Label) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	switch {
	case bytes.Equal(b, []byte("null")):
		*l = ""
		return nil
	case len(b) > 0 && b[0] == '"':
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*l = Label(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("label must be a string or number: %w", err)
	}
	*l = Label(n.String())
	return nil
}

// Property names that never denote a party.
const (
	KeyPDNum          = "PD_NUM"
	KeyAdvPollNum     = "ADV_POLL_N"
	KeyDistrictName   = "DistrictName"
	KeyPoll           = "Poll"
	KeyPollNumber     = "PollNumber"
	KeyDistrictNumber = "DistrictNumber"
	KeyTotalVotes     = "TotalVotes"
)

// reservedKeys is the exclusion list applied when iterating per-party
// properties. It is a superset of the shorter election-day page list.
var reservedKeys = []string{
	KeyPDNum, KeyAdvPollNum, KeyDistrictName, KeyPoll,
	KeyPollNumber, KeyDistrictNumber, KeyTotalVotes,
}

// IsReserved reports whether a property key is an identifying field rather
// than a party name.
func IsReserved(key string) bool {
	return slices.Contains(reservedKeys, key)
}

// PollProperties holds the identifying fields and per-party vote counts of
// one poll feature.
type PollProperties struct {
	DistrictName   string
	DistrictNumber Label
	Poll           Label // federal poll number
	PollNumber     Label // Ontario poll number
	PDNum          Label
	AdvPollNum     Label
	TotalVotes     VoteCount

	// Parties maps party name to its vote count at this poll.
	Parties map[string]VoteCount

	order []string
}

// PartyNames returns party keys in the order they appeared in the file.
func (p *PollProperties) PartyNames() []string {
	out := make([]string, len(p.order))
	copy(out, p.order)
	return out
}

// Party returns the vote count for party and whether the poll lists it.
func (p *PollProperties) Party(party string) (VoteCount, bool) {
	vc, ok := p.Parties[party]
	return vc, ok
}

// SetParty records a party's count, appending it to the key order if new.
func (p *PollProperties) SetParty(party string, vc VoteCount) {
	if p.Parties == nil {
		p.Parties = make(map[string]VoteCount)
	}
	if _, ok := p.Parties[party]; !ok {
		p.order = append(p.order, party)
	}
	p.Parties[party] = vc
}

// PollLabel returns the displayed poll number: PollNumber for Ontario data,
// Poll for federal data.
func (p *PollProperties) PollLabel(ontario bool) string {
	if ontario {
		return string(p.PollNumber)
	}
	return string(p.Poll)
}

// UnmarshalJSON decodes a feature's properties object, preserving party key
// order. Any non-reserved key must hold a vote-count object.
func (p *PollProperties) UnmarshalJSON(b []byte) error {
	dec := json.NewDecoder(bytes.NewReader(b))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("properties must be an object")
	}

	*p = PollProperties{Parties: make(map[string]VoteCount)}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		key, _ := tok.(string)

		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return fmt.Errorf("property %q: %w", key, err)
		}
		if err := p.setField(key, raw); err != nil {
			return fmt.Errorf("property %q: %w", key, err)
		}
	}
	_, err = dec.Token()
	return err
}

func (p *PollProperties) setField(key string, raw json.RawMessage) error {
	switch key {
	case KeyDistrictName:
		var l Label
		if err := json.Unmarshal(raw, &l); err != nil {
			return err
		}
		p.DistrictName = string(l)
	case KeyDistrictNumber:
		return json.Unmarshal(raw, &p.DistrictNumber)
	case KeyPoll:
		return json.Unmarshal(raw, &p.Poll)
	case KeyPollNumber:
		return json.Unmarshal(raw, &p.PollNumber)
	case KeyPDNum:
		return json.Unmarshal(raw, &p.PDNum)
	case KeyAdvPollNum:
		return json.Unmarshal(raw, &p.AdvPollNum)
	case KeyTotalVotes:
		return json.Unmarshal(raw, &p.TotalVotes)
	default:
		trimmed := bytes.TrimSpace(raw)
		if len(trimmed) == 0 || trimmed[0] != '{' {
			return fmt.Errorf("party vote count must be an object, got %s", trimmed)
		}
		var vc VoteCount
		if err := json.Unmarshal(trimmed, &vc); err != nil {
			return err
		}
		p.SetParty(key, vc)
	}
	return nil
}

// MarshalJSON writes identifying fields first, then parties in file order.
func (p PollProperties) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	first := true
	write := func(key string, v any) error {
		data, err := json.Marshal(v)
		if err != nil {
			return fmt.Errorf("property %q: %w", key, err)
		}
		if !first {
			buf.WriteByte(',')
		}
		first = false
		k, _ := json.Marshal(key)
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(data)
		return nil
	}

	labels := []struct {
		key string
		val Label
	}{
		{KeyDistrictNumber, p.DistrictNumber},
		{KeyPoll, p.Poll},
		{KeyPollNumber, p.PollNumber},
		{KeyPDNum, p.PDNum},
		{KeyAdvPollNum, p.AdvPollNum},
	}
	if err := write(KeyDistrictName, p.DistrictName); err != nil {
		return nil, err
	}
	for _, l := range labels {
		if l.val == "" {
			continue
		}
		if err := write(l.key, string(l.val)); err != nil {
			return nil, err
		}
	}
	if err := write(KeyTotalVotes, p.TotalVotes); err != nil {
		return nil, err
	}
	for _, party := range p.order {
		if err := write(party, p.Parties[party]); err != nil {
			return nil, err
		}
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
