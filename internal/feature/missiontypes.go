package feature

var missionTypeLabels = map[string]string{
	"MT_ARENA":                 "Rathuum",
	"MT_ARMAGEDDON":            "Void Armageddon",
	"MT_ARTIFACT":              "Disruption",
	"MT_ASSAULT":               "Assault",
	"MT_ASSASSINATION":         "Assassination",
	"MT_CAPTURE":               "Capture",
	"MT_CORRUPTION":            "Void Flood",
	"MT_DEFAULT":               "Unknown",
	"MT_DEFENSE":               "Defense",
	"MT_ENDLESS_EXTERMINATION": "(Elite) Sanctuary Onslaught",
	"MT_EVACUATION":            "Defection",
	"MT_EXCAVATE":              "Excavation",
	"MT_EXTERMINATION":         "Exterminate",
	"MT_HIVE":                  "Hive Sabotage",
	"MT_INTEL":                 "Spy",
	"MT_LANDSCAPE":             "Landscape",
	"MT_MOBILE_DEFENSE":        "Mobile Defense",
	"MT_PURIFY":                "Infested Salvage",
	"MT_PVP":                   "Conclave",
	"MT_RACE":                  "Rush (Archwing)",
	"MT_RESCUE":                "Rescue",
	"MT_RETRIEVAL":             "Hijack",
	"MT_SABOTAGE":              "Sabotage",
	"MT_SURVIVAL":              "Survival",
	"MT_TERRITORY":             "Interception",
	"MT_VOID_CASCADE":          "Void Cascade",
}

// MissionTypeLabel maps an internal MT_* tag to its display name; unknown
// tags pass through unchanged.
func MissionTypeLabel(tag string) string {
	if label, ok := missionTypeLabels[tag]; ok {
		return label
	}
	return tag
}
