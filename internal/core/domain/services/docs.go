// Package services provides domain services that orchestrate business operations
// across multiple domain entities in the fulfillment system. It implements
// business workflows that don't naturally belong to a single aggregate root.
//
// The package includes:
//   - LeastLoadedZonePicker: A domain service for choosing a free shelf slot
//     from the zone with the most remaining capacity
//   - ScanTokenService: An HMAC-based signer and resolver for short-lived
//     scan link tokens
//
// Domain services coordinate between aggregates, implementing business logic that
// spans multiple bounded contexts following Domain-Driven Design principles.
package services
