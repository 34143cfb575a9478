// Package api wires the implindexd daemon: structured logging, the
// generated implementor tables compiled into the binary and the HTTP server
// on the global board.
//
//	func main() {
//	    if err := api.Serve(); err != nil {
//	        log.Fatal(err)
//	    }
//	}
package api
