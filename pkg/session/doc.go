/*
Package session serializes access to stored games.

A Manager wraps a ports.GameStore with a per-game mutex (reference counted,
so idle games hold no memory) and, optionally, a ports.DistributedLocker for
processes sharing one store. Update runs a load-modify-save cycle under the
lock, which is what every move submitted through the CLI or a server needs.
*/
package session
