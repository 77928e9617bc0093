/*
Package orm provides an easy to use db wrapper.

Models are stored in buckets. A bucket prefixes every key with its name, so
that many buckets can share a single KVStore without key collisions. Models
are serialized using the go-amino binary encoding.

Sequences provide monotonically increasing identifiers, starting at zero.
*/
package orm
