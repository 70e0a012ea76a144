// Package shims contains serialization shims for types whose wire
// representation does not follow from their Go definition: closed integer
// enumerations, bit flag sets, MIME media types, naive date-times as
// milliseconds since the Unix epoch, optional values serialized as their
// default, and UUIDs.
//
// Every shim is exposed as a serde.Serde to and from a wire.Value, which
// can be chained with one of the wire backends (JSON, MessagePack, CBOR,
// Protobuf) through serde.Chain. Shims also provide marshaling helpers
// to be called from the json.Marshaler and msgpack.CustomEncoder
// implementations of the shimmed types.
//
// You might want to start from the `enumprim` and `bitflags` packages.
package shims
