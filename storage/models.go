package storage

import (
	"fmt"
	"time"
)

type Choice string

const (
	ChoiceYes Choice = "yes"
	ChoiceNo  Choice = "no"
)

func (c Choice) Valid() bool {
	return c == ChoiceYes || c == ChoiceNo
}

// Namespace separates the all-time market counters from the per-window ones.
type Namespace string

const (
	NamespaceMarket Namespace = "market"
	NamespaceWindow Namespace = "window"
)

// CounterKey addresses one counter. Market ids and tokens are opaque client
// strings, so they are kept as separate fields and never joined into one key.
// Token is empty in the market namespace.
type CounterKey struct {
	Namespace Namespace
	MarketID  string
	Token     string
}

func MarketKey(marketID string) CounterKey {
	return CounterKey{Namespace: NamespaceMarket, MarketID: marketID}
}

// WindowKey addresses the counters of one voting session (token) on one market.
func WindowKey(marketID, token string) CounterKey {
	return CounterKey{Namespace: NamespaceWindow, MarketID: marketID, Token: token}
}

// String is for logs only.
func (k CounterKey) String() string {
	if k.Namespace == NamespaceWindow {
		return fmt.Sprintf("%s#%q#%q", k.Namespace, k.MarketID, k.Token)
	}
	return fmt.Sprintf("%s#%q", k.Namespace, k.MarketID)
}

type Vote struct {
	ID        string    `dynamodbav:"SK" json:"id"`
	MarketID  string    `dynamodbav:"PK" json:"marketId"`
	Token     string    `dynamodbav:"Token" json:"token"`
	Choice    Choice    `dynamodbav:"Choice" json:"vote"`
	CreatedAt time.Time `dynamodbav:"CreatedAt" json:"timestamp"`
}

// Counters is the yes/no/total triplet kept for every counter key.
// Total always equals Yes + No.
type Counters struct {
	Yes       int64     `dynamodbav:"Yes" json:"yes"`
	No        int64     `dynamodbav:"No" json:"no"`
	Total     int64     `dynamodbav:"Total" json:"total"`
	UpdatedAt time.Time `dynamodbav:"UpdatedAt" json:"updatedAt"`
}

type VoteStats struct {
	Count  int64
	Latest *time.Time
}
