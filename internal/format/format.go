// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 GiantsEdit Authors

// Package format holds the fixed catalog the legacy binary formats require:
// magic values, section and leaf names, structural limits, and the rule
// catalog the codecs bind document trees to.
package format

import (
	"embed"
	"sync"

	"github.com/ncblakely/GiantsEdit-sub002/internal/schema"
)

// Magic values identifying the two formats, read as little-endian uint32.
// On the wire they spell "GWD1" and "GMS1".
const (
	WorldMagic   uint32 = 0x31445747
	MissionMagic uint32 = 0x31534D47
)

// Structural limits of the fixed layout.
const (
	// HeaderNameLen is the fixed buffer size of the map name field.
	HeaderNameLen = 32
	// IncludeNameLen is the fixed buffer size of one include-file name,
	// 31 usable characters plus the terminator.
	IncludeNameLen = 32
	// ScenarioFileLen is the fixed buffer size of a scenario file name.
	ScenarioFileLen = 32
	// MaxIncludeFiles caps the include-files list.
	MaxIncludeFiles = 32
)

// Object record flag bits. The flags byte leads every placed-object entry
// and records which optional fields follow.
const (
	ObjFlagThreeAngle byte = 0x01
	ObjFlagAIMode     byte = 0x02
	ObjFlagTeam       byte = 0x04
	ObjFlagScale      byte = 0x08
)

// Node names of the rule catalog.
const (
	RootWorld   = "MapData"
	RootMission = "MissionData"

	NodeHeader       = "Header"
	NodeTiling       = "Tiling"
	NodeFog          = "Fog"
	NodeUnderwater   = "UnderwaterFog"
	NodeTexture      = "Texture"
	NodeObject       = "Object"
	NodeEffect       = "Effect"
	NodeScenario     = "Scenario"
	TypeMissionHdr   = "MissionHeader"
)

// Leaf names shared across sections.
const (
	LeafVersion     = "Version"
	LeafName        = "Name"
	LeafWidth       = "Width"
	LeafHeight      = "Height"
	LeafWorld       = "World"
	LeafTileWidth   = "TileWidth"
	LeafTileHeight  = "TileHeight"
	LeafTileScale   = "TileScale"
	LeafMin         = "Min"
	LeafMax         = "Max"
	LeafR           = "R"
	LeafG           = "G"
	LeafB           = "B"
	LeafFlags       = "Flags"
	LeafSkyDome     = "SkyDome"
	LeafType        = "Type"
	LeafX           = "X"
	LeafY           = "Y"
	LeafZ           = "Z"
	LeafDirFacing   = "DirFacing"
	LeafTiltForward = "TiltForward"
	LeafTiltLeft    = "TiltLeft"
	LeafAIMode      = "AIMode"
	LeafTeam        = "Team"
	LeafScale       = "Scale"
	LeafFile        = "File"
	LeafInclude     = "Include"

	LeafObjectVersion   = "ObjectVersion"
	LeafEffectVersion   = "EffectVersion"
	LeafScenarioVersion = "ScenarioVersion"
)

//go:embed catalog.yaml
var catalogFS embed.FS

var (
	rulesOnce sync.Once
	rules     *schema.Catalog
	rulesErr  error
)

// Rules returns the shared rule catalog for the world and mission formats,
// parsed from the embedded catalog on first use.
func Rules() (*schema.Catalog, error) {
	rulesOnce.Do(func() {
		rules, rulesErr = schema.NewLoader(catalogFS).LoadFile("catalog.yaml")
	})
	return rules, rulesErr
}
