// Package tokencache persists serialized token caches in the secret backend,
// keyed per profile and client kind.
package tokencache
