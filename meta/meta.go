// meta/meta.go
package meta

import "time"

// BOARD_SIZE defines the width and height of the default board.
const BOARD_SIZE = 7

// TIME_LIMIT defines the time each agent has per move.
const TIME_LIMIT = 150 * time.Millisecond

// TIMER_THRESHOLD defines the time left at which searches are aborted.
const TIMER_THRESHOLD = 10 * time.Millisecond

// NUM_MATCHES defines the number of matches per matchup. Each match is two
// games from the same opening with the seats swapped.
const NUM_MATCHES = 5

// SEARCH_DEPTH defines the depth of fixed-depth baseline agents.
const SEARCH_DEPTH = 3
