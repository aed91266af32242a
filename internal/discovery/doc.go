// Package discovery synthesizes hub sensor auto-discovery descriptors from
// catalog datalabels.
//
// Synthesis normalizes the legacy unit vocabulary, infers a device class by
// looking the canonical unit up in a fixed registry (a deliberate subset of
// the hub's classes), derives a state class, and assembles the descriptor
// with the device's fixed topics and availability payloads. A unit matching
// more than one device class is an error, never a guess.
package discovery
