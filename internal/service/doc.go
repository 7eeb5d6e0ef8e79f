// Package service contains the use-case layer. Services orchestrate domain
// operations over the store and gateway ports and own the cross-cutting
// policies the entities cannot express: event emission, score awarding,
// retries and caching. Nothing in this package talks to a concrete
// transport or database.
package service
