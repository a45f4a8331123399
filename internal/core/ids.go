// Package core implements the ECS substrate: stable entity identifiers,
// type-keyed component stores, and the World query façade.
package core

import "fmt"

// EntityID is an opaque, ordered, non-negative integer identifier. IDs are
// assigned by a per-World counter starting at 0, increase strictly
// monotonically, and are never recycled after destruction.
type EntityID uint64

// Brand is an advisory "type flavour" for an EntityID (character, faction,
// site, ...). Brands carry no runtime check — the same numeric ID may be
// interpreted under different brands in different contexts — but the typed
// wrappers below keep cross-brand assignment from happening by accident.
type Brand uint8

const (
	BrandCharacter Brand = iota
	BrandFaction
	BrandSite
	BrandArtifact
	BrandEvent
	BrandDeity
	BrandBook
	BrandRegion
	BrandWar
)

func (b Brand) String() string {
	switch b {
	case BrandCharacter:
		return "character"
	case BrandFaction:
		return "faction"
	case BrandSite:
		return "site"
	case BrandArtifact:
		return "artifact"
	case BrandEvent:
		return "event"
	case BrandDeity:
		return "deity"
	case BrandBook:
		return "book"
	case BrandRegion:
		return "region"
	case BrandWar:
		return "war"
	default:
		return fmt.Sprintf("brand(%d)", uint8(b))
	}
}

// CharacterID, FactionID, ... are newtype wrappers around EntityID for
// domain layers that want brand safety at compile time. The World's public
// API always takes the base EntityID; conversions here are explicit and
// one-directional (base -> branded is a plain cast by the caller, branded ->
// base is the Raw() accessor) so no branded value is silently widened.
type (
	CharacterID EntityID
	FactionID   EntityID
	SiteID      EntityID
	ArtifactID  EntityID
	DeityID     EntityID
	BookID      EntityID
	RegionID    EntityID
	WarID       EntityID
)

func (id CharacterID) Raw() EntityID { return EntityID(id) }
func (id FactionID) Raw() EntityID   { return EntityID(id) }
func (id SiteID) Raw() EntityID      { return EntityID(id) }
func (id ArtifactID) Raw() EntityID  { return EntityID(id) }
func (id DeityID) Raw() EntityID     { return EntityID(id) }
func (id BookID) Raw() EntityID      { return EntityID(id) }
func (id RegionID) Raw() EntityID    { return EntityID(id) }
func (id WarID) Raw() EntityID       { return EntityID(id) }
