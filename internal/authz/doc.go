// Package authz holds the role rules shared by every endpoint: which user
// type may see or change which project and task, and which task status
// changes each role may request.
//
// Everything here is a pure function of the caller and the already-loaded
// resource, so callers look the resource up first (yielding not-found when
// it is absent) and only then ask whether the caller is in scope.
package authz
