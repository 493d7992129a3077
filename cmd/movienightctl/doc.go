// Command movienightctl inspects movie-night rooms from the command line.
//
// It reads the same YAML config as the server, prints the current voting
// period and countdown, and renders a room's favorites and current-period
// tally as tables straight from the database.
package main
