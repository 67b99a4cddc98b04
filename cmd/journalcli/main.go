// journalcli is a small command line client for a running mood journal
// server. It drives the export and import endpoints over HTTP.
package main

func main() {
	Execute()
}
