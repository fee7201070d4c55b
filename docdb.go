// Package docdb provides a local documentation index. It stores pages
// produced by an external crawler in an embedded database kept in sync
// with a full-text index, and serves ranked search, section browsing,
// statistics and word-budgeted context for LLM prompts.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., sqlite/, goquery/, gemini/).
package docdb
