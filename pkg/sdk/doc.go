// Package recdex embeds the record browser in a Go program: the same filter
// compiler, column discovery and identifier rules the HTTP API serves, backed
// by MongoDB, Valkey or Redis.
//
//	client, _ := recdex.New(ctx, recdex.WithMongo("mongodb://localhost:27017", "bmw-database"))
//	defer client.Close()
//
//	cars := client.Records("cardetails")
//	rows, _ := cars.List(ctx, recdex.Filter{Column: "year", Condition: recdex.Equals, Search: "2020"})
//	cols, _ := cars.Columns(ctx)
//
// Bulk loading goes through Import, which writes in chunks and reports one
// result per record.
package recdex
