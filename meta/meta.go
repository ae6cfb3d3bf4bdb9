// meta/meta.go
package meta

import "chopsticks/game"

// DefaultPasses is the number of evaluation passes run over the position graph.
const DefaultPasses = 5000

// DefaultLogLevel is the zerolog level used when none is configured.
const DefaultLogLevel = "info"

// StartPosition is the opening position: one finger on every hand.
var StartPosition = game.NewPosition(1, 1, 1, 1)
