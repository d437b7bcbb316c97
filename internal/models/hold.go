package models

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// HoldRole is the closed set of roles a hold can play in a boulder.
type HoldRole string

const (
	HoldRoleStart HoldRole = "start"
	HoldRoleHand  HoldRole = "hand"
	HoldRoleFoot  HoldRole = "foot"
	HoldRoleTop   HoldRole = "top"
)

// roleAliases folds the free-string spellings seen on the wire into the
// canonical roles. Unknown strings are rejected at the mapper boundary.
var roleAliases = map[string]HoldRole{
	"start":      HoldRoleStart,
	"start_hold": HoldRoleStart,
	"green":      HoldRoleStart,
	"hand":       HoldRoleHand,
	"hands":      HoldRoleHand,
	"blue":       HoldRoleHand,
	"foot":       HoldRoleFoot,
	"feet":       HoldRoleFoot,
	"foothold":   HoldRoleFoot,
	"yellow":     HoldRoleFoot,
	"top":        HoldRoleTop,
	"top_hold":   HoldRoleTop,
	"finish":     HoldRoleTop,
	"red":        HoldRoleTop,
}

// ParseHoldRole normalizes a wire hold type string to a HoldRole.
func ParseHoldRole(s string) (HoldRole, error) {
	role, ok := roleAliases[strings.ToLower(strings.TrimSpace(s))]
	if !ok {
		return "", fmt.Errorf("unknown hold role %q", s)
	}
	return role, nil
}

// Hold is a single placed hold on a spraywall photo. Coordinates are
// normalized to [0,1] of the photo's width and height. Holds have no
// independent lifecycle: they are created and destroyed with their
// parent boulder's synchronization.
type Hold struct {
	ID        uuid.UUID `json:"id"`
	BoulderID uuid.UUID `json:"boulder_id"`
	X         float64   `json:"x" validate:"gte=0,lte=1"`
	Y         float64   `json:"y" validate:"gte=0,lte=1"`
	Role      HoldRole  `json:"role"`
	Position  int       `json:"position"`
}
