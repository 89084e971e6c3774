// Package mock provides test doubles for the ai service contracts.
// Default behavior is deterministic so tests can assert on ranking order;
// function fields allow per-test behavior injection.
package mock
