package scene

// Preset is a named, person-agnostic description of an empty
// environment: location, lighting and camera intent. Presets never
// describe a person.
type Preset struct {
	ID       string
	Name     string
	Anchor   string // description of the empty environment ("anchor zone")
	Lighting string
	Camera   string
	Realism  []string
}

// SafePresetID is the deterministic fallback used whenever scene
// resolution fails. The pipeline must never stall on scene resolution.
const SafePresetID = "studio_neutral"

var presets = map[string]Preset{
	"studio_neutral": {
		ID:       "studio_neutral",
		Name:     "Neutral Studio",
		Anchor:   "clean neutral studio backdrop, seamless light-gray paper sweep, uncluttered floor",
		Lighting: "soft wraparound key with gentle fill, no colored gels",
		Camera:   "eye-level full-body framing, 50mm equivalent",
		Realism: []string{
			"subtle paper texture on the sweep",
			"soft natural falloff toward the edges of the frame",
		},
	},
	"studio_white": {
		ID:       "studio_white",
		Name:     "White Studio",
		Anchor:   "pure white seamless studio cyclorama, empty floor, no props",
		Lighting: "high-key even lighting, minimal shadows",
		Camera:   "eye-level full-body framing, slight negative space above",
		Realism: []string{
			"faint contact shadow under the subject position",
			"gentle vignette at the extreme corners",
		},
	},
	"urban_street": {
		ID:       "urban_street",
		Name:     "Urban Street",
		Anchor:   "quiet city sidewalk with blurred storefronts, no pedestrians in frame",
		Lighting: "overcast daylight, soft and directionless",
		Camera:   "candid street framing, shallow depth of field on the background",
		Realism: []string{
			"distant traffic bokeh",
			"worn pavement texture in the foreground",
		},
	},
	"golden_hour_park": {
		ID:       "golden_hour_park",
		Name:     "Golden Hour Park",
		Anchor:   "open park lawn with scattered trees, empty path receding behind",
		Lighting: "low warm golden-hour sun from camera left",
		Camera:   "slightly low angle, sun flare kept off the subject position",
		Realism: []string{
			"long soft shadows across the grass",
			"backlit leaf edges in the midground",
		},
	},
	"cafe_interior": {
		ID:       "cafe_interior",
		Name:     "Cafe Interior",
		Anchor:   "cozy cafe interior with an empty wooden table and window seating",
		Lighting: "window daylight from one side, warm interior fill",
		Camera:   "seated-distance framing, background tables defocused",
		Realism: []string{
			"steam-softened window highlights",
			"muted reflections on the tabletop",
		},
	},
	"office_modern": {
		ID:       "office_modern",
		Name:     "Modern Office",
		Anchor:   "bright modern office lounge, glass partitions, empty seating area",
		Lighting: "cool diffuse ceiling light balanced with window daylight",
		Camera:   "waist-up professional framing",
		Realism: []string{
			"soft monitor glow in the defocused background",
			"clean specular highlights on the glass",
		},
	},
	"rooftop_evening": {
		ID:       "rooftop_evening",
		Name:     "Rooftop Evening",
		Anchor:   "open rooftop terrace at dusk, city skyline bokeh, empty rail in midground",
		Lighting: "blue-hour ambient with warm string lights out of focus",
		Camera:   "three-quarter framing against the skyline",
		Realism: []string{
			"mixed color temperature between sky and string lights",
			"faint breeze-blurred edges on distant flags",
		},
	},
	"beach_overcast": {
		ID:       "beach_overcast",
		Name:     "Overcast Beach",
		Anchor:   "wide empty beach under an overcast sky, flat sand to the waterline",
		Lighting: "diffuse gray daylight, no hard shadows",
		Camera:   "wide environmental framing with horizon level",
		Realism: []string{
			"wet-sand reflectivity near the waterline",
			"muted sea haze at the horizon",
		},
	},
}

// PresetIDs returns the enumerated preset ids in stable order. The
// external mapper may only choose from this set.
func PresetIDs() []string {
	order := []string{
		"studio_neutral",
		"studio_white",
		"urban_street",
		"golden_hour_park",
		"cafe_interior",
		"office_modern",
		"rooftop_evening",
		"beach_overcast",
	}
	out := make([]string, 0, len(order))
	for _, id := range order {
		if _, ok := presets[id]; ok {
			out = append(out, id)
		}
	}
	return out
}

// LookupPreset returns the preset for an id.
func LookupPreset(id string) (Preset, bool) {
	p, ok := presets[id]
	return p, ok
}
