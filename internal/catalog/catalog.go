// Package catalog holds the static role tables: which roles are in play for a
// given room capacity and how many points each role is worth.
package catalog

import (
	"fmt"
	"strings"
)

// Role identifies one of the secret roles handed out each round
type Role int

const (
	// RoleNone is the zero value; players hold it while the room is waiting
	RoleNone Role = iota

	// RoleRaja is the king, the decision maker in 4 and 5 player rooms
	RoleRaja

	// RoleRani is the queen, only present in 5 player rooms
	RoleRani

	// RoleMantri is the minister, the accusing role
	RoleMantri

	// RoleSipahi is the soldier, the decision maker in 3 player rooms
	RoleSipahi

	// RoleChor is the thief, the accused role
	RoleChor
)

const (
	// MinCapacity is the smallest supported room
	MinCapacity = 3

	// MaxCapacity is the largest supported room
	MaxCapacity = 5

	// AccusingRole may submit a guess
	AccusingRole = RoleMantri

	// AccusedRole is the role being guessed for
	AccusedRole = RoleChor

	// CorrectGuessBonus is added to the accuser on a correct guess
	CorrectGuessBonus = 200

	// CorrectGuessPenalty is taken from the accused role holder on a correct guess
	CorrectGuessPenalty = 200
)

var roleSets = map[int][]Role{
	3: {RoleMantri, RoleChor, RoleSipahi},
	4: {RoleRaja, RoleMantri, RoleChor, RoleSipahi},
	5: {RoleRaja, RoleMantri, RoleChor, RoleSipahi, RoleRani},
}

// ErrUnsupportedCapacity is returned for capacities outside 3..5
type ErrUnsupportedCapacity int

func (e ErrUnsupportedCapacity) Error() string {
	return fmt.Sprintf("unsupported room capacity %d (want %d-%d)", int(e), MinCapacity, MaxCapacity)
}

// ValidCapacity reports whether a room of this size can be played
func ValidCapacity(capacity int) bool {
	_, ok := roleSets[capacity]
	return ok
}

// Capacities lists the supported room sizes in ascending order
func Capacities() []int {
	return []int{3, 4, 5}
}

// RolesFor returns a fresh copy of the ordered role set for a capacity.
// Callers may shuffle the returned slice freely.
func RolesFor(capacity int) ([]Role, error) {
	set, ok := roleSets[capacity]
	if !ok {
		return nil, ErrUnsupportedCapacity(capacity)
	}

	roles := make([]Role, len(set))
	copy(roles, set)
	return roles, nil
}

// BaseScore returns the points a role is worth for one round
func BaseScore(role Role) int {
	switch role {
	case RoleRaja:
		return 1000
	case RoleRani:
		return 900
	case RoleMantri:
		return 800
	case RoleSipahi:
		return 500
	case RoleChor, RoleNone:
		return 0
	}
	return 0
}

// DecisionMaker returns the role that adjudicates guesses for a room size.
// Three player rooms have no raja so the sipahi takes the job.
func DecisionMaker(capacity int) Role {
	if capacity == MinCapacity {
		return RoleSipahi
	}
	return RoleRaja
}

// String returns the lower-case role name used on the wire
func (r Role) String() string {
	switch r {
	case RoleRaja:
		return "raja"
	case RoleRani:
		return "rani"
	case RoleMantri:
		return "mantri"
	case RoleSipahi:
		return "sipahi"
	case RoleChor:
		return "chor"
	case RoleNone:
		return ""
	}
	return fmt.Sprintf("role(%d)", int(r))
}

// Title returns the display name of the role
func (r Role) Title() string {
	name := r.String()
	if name == "" {
		return "Unassigned"
	}
	return strings.ToUpper(name[:1]) + name[1:]
}

// ParseRole converts a wire name back into a Role
func ParseRole(name string) (Role, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "raja":
		return RoleRaja, nil
	case "rani":
		return RoleRani, nil
	case "mantri":
		return RoleMantri, nil
	case "sipahi":
		return RoleSipahi, nil
	case "chor":
		return RoleChor, nil
	case "":
		return RoleNone, nil
	}
	return RoleNone, fmt.Errorf("unknown role %q", name)
}

// MarshalText encodes the role by name so JSON payloads stay readable
func (r Role) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}

// UnmarshalText decodes a role name
func (r *Role) UnmarshalText(text []byte) error {
	role, err := ParseRole(string(text))
	if err != nil {
		return err
	}
	*r = role
	return nil
}
