// Package models defines the core domain models for the people & events directory.
//
// # Records
//
// Two record collections are kept by the record store:
//   - Person: a community member, listed newest first
//   - Event: a dated gathering, listed earliest first
//
// Both carry an ID assigned by the store on creation. The ID never changes after
// that; updates replace every other field of the record.
//
// # Sessions
//
// A Session is the client-held proof of authentication. It carries a Role, which
// is the only access control in the system:
//   - RoleAdmin may create, update and delete records
//   - RoleMember may only list them
//
// # Dates
//
// Calendar dates (birthdays, anniversaries, event dates) have no time or zone and
// travel as "YYYY-MM-DD" strings. See Date.
package models
