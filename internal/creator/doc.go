// Package creator issues the guarded CREATE DATABASE statement over a
// transport opened for the connection and classifies what comes back.
//
// Every dialect funnels server rejections into a single shape: a one-row
// result whose first column is named ErrorMessage. SQL Server produces it
// with a TRY/CATCH block; the other transports convert driver errors into
// the same shape. The Creator therefore has exactly one classification path.
//
// # Example Usage
//
//	c := creator.New(registry, logger)
//	outcome := c.Create(ctx, conn, "Sales")
//	if !outcome.Succeeded() {
//	    // outcome.Kind is ConnectFailed or ExecError
//	}
//
// # Thread Safety
//
// Creator holds no per-call state and is safe for concurrent use. Each call
// opens and releases its own transport.
package creator
