// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package grid

import "fmt"

// ItemID addresses one logical item within a Space. It is comparable
// and usable as a map key; the engine never assumes an ordering, only
// concrete spaces do.
type ItemID struct {
	Row, Col int
}

func (id ItemID) String() string {
	return fmt.Sprintf("(%d,%d)", id.Row, id.Col)
}
