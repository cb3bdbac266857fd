// Package question provides the record and key types shared by the store,
// the HTTP adapter and the CLI.
//
// This package contains type definitions and key validation only. It imports
// nothing internal, so every other package can depend on it.
//
// Key design constraints:
//   - Week is a uint8; out-of-range weeks fail JSON decoding
//   - JSON tags match the on-disk format: user, week, text
//   - User keys are NFC-normalized before they become path segments
package question
