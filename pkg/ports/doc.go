// Package ports defines the driven-side interfaces of pagelift: where
// restoration state is persisted and where scroll commands land. Adapters
// under pkg/adapters implement them.
package ports
