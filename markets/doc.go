// Package markets reads NFL-related prediction markets from the Polymarket
// Gamma API and price history from the Polymarket CLOB API.
//
// The flow is two-staged: FetchCandidateEvents lists active events and keeps
// those whose title matches a keyword, then a Consolidator fetches each
// candidate's detail in parallel and flattens, deduplicates and filters the
// markets they contain.
package markets
