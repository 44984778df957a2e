package statereader

// Compile-time assertion that RPCReaderFactory satisfies Factory.
var _ Factory = (*RPCReaderFactory)(nil)

// Compile-time assertion that rpcStateReader satisfies StateReader.
var _ StateReader = (*rpcStateReader)(nil)
