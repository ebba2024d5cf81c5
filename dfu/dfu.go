/*Package dfu implements the client side of the InfiniTime resource-transfer
protocol: a framed request/response protocol carried over two BLE GATT
characteristics that lets a host list directories, and read, write, delete,
rename, and create directories on a watch's flash filesystem.

The package is transport-agnostic: it depends only on the narrow Transport
interface in transport.go, never on a concrete BLE library. The watch
package wires a Session to a live github.com/go-ble/ble connection; tests in
this package wire it to an in-memory fake.

A Session serializes one command at a time: callers must await completion
of an operation (Version, ListDir, ReadFile, WriteFile, DeleteFile,
CreateDir, MoveFile) before issuing the next. There is no internal locking
beyond that convention; concurrent callers must serialize externally.
*/
package dfu

const (
	// MaxPayload is the client-side ceiling, in bytes, on file data carried
	// in a single read-file or write-file frame.
	MaxPayload = 0xE7
)
