package veo3

import (
	"fmt"
	"strings"

	"academy/internal/domain"
	"academy/internal/domain/validation"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Section is one top-level block of the compiled prompt.
type Section struct {
	Name  string
	Lines []string
}

// Section names, in output order.
const (
	SectionCoreConcept    = "core_concept"
	SectionOverallStyle   = "overall_style"
	SectionDialogues      = "dialogues_and_language"
	SectionCreativity     = "creativity_level"
	SectionScene          = "scene_and_environment"
	SectionCharacters     = "characters"
	SectionActions        = "actions_and_dialogues"
	SectionCinematography = "cinematography"
	SectionPacing         = "pacing_and_editing"
	SectionAudio          = "audio_design"
	SectionSubtitles      = "subtitles_and_negative_constraints"
	SectionFinalNotes     = "final_notes"
)

const (
	lineSeparator = "\n\n"

	// residual additional details this short are dropped
	minResidualDetailChars = 5
)

const (
	sceneChecklist = "\n  - **Time of Day & Light:** (e.g., \"Golden hour casting long shadows\", \"Overcast midday with flat, diffused light\", \"Neon-lit urban nightscape with reflections on wet pavement\")." +
		"\n  - **Weather & Atmosphere:** (e.g., \"Gentle rain falling\", \"Thick morning fog\", \"Crisp autumn air with falling leaves\", \"Oppressive summer heat haze\")." +
		"\n  - **Dominant Colors & Palette:** (e.g., \"Muted earth tones with a single splash of vibrant red\", \"Cool blues and grays creating a somber mood\", \"Saturated, high-contrast comic-book colors\")." +
		"\n  - **Key Textures & Materials:** (e.g., \"Rough-hewn stone, weathered wood, shimmering silk, polished chrome\")."

	characterChecklist = "\n  - For each character described, detail: " +
		"\n    - **Physicality:** Age appearance, build (slender, muscular, heavyset), height, distinct facial features (e.g., sharp nose, high cheekbones), hair (color, style, length), eye color." +
		"\n    - **Attire:** Specific clothing items, style (casual, formal, period-specific), fabric, condition (new, worn, pristine, tattered), and any accessories." +
		"\n    - **Props:** Objects they carry or interact with significantly." +
		"\n    - **Expressions & Body Language:** Key emotions to convey and how (e.g., \"furrowed brow and clenched fists to show anger\", \"eyes wide with wonder, a slight smile\")." +
		"\n    - **Dialogue Delivery (if applicable):** If dialogue is included in their description, it MUST be in Portuguese (Brazilian), considering the specified accent."

	noCharacters = "No specific characters detailed by the user. If characters are implied by the scene or actions, their appearance and behavior should be contextually appropriate and visually compelling, fitting the overall style and tone. Any implied dialogue is in Portuguese (Brazilian)."

	noActions = "No specific key actions detailed by the user. The scene should evolve organically based on the environment and characters, or maintain a specific mood if it's more atmospheric."

	cameraChecklist = "\n  - **Shot Types:** (e.g., \"Sequence opens with an establishing long shot, transitions to medium shots for dialogue, and uses an extreme close-up for emotional impact.\"). " +
		"\n  - **Camera Movements:** (e.g., \"Slow tracking shot following the character\", \"Dynamic handheld camera during a chase sequence\", \"Static, observational tripod shots\", \"Sweeping drone establishing shot\")." +
		"\n  - **Angles:** (e.g., \"Low-angle shots to make the subject imposing\", \"High-angle to show vulnerability or an overview\")." +
		"\n  - **Focus & Depth of Field:** (e.g., \"Shallow depth of field to isolate the character\", \"Deep focus to show the environment's scale\")."

	noCamera = "**Camera Work & Composition:** Employ standard cinematic best practices. Vary shot types, angles, and movements to create visual interest and support the narrative or mood effectively. Default to realistic and immersive camera motion unless the visual style dictates otherwise."

	defaultPacing = "**Pacing & Editing Style:** The pacing should match the genre and scene content. (e.g., action sequences benefit from faster cuts, dramatic moments from longer takes)."

	defaultAmbience = "**Soundscape & Ambience:** Rich and immersive. Ambient sounds should be contextually appropriate to the scene, enhancing realism and atmosphere."

	closingDirective = "The goal is a polished, professional, and highly engaging video segment. Pay close attention to continuity and the seamless integration of all specified elements. Emphasize emotional impact and visual storytelling."
)

var spokenDirectives = map[SpokenLanguage]string{
	SpokenHasSpeech:     "The video is expected to have spoken content in Portuguese (Brazilian).",
	SpokenNoSpeech:      "The video primarily uses visual storytelling and ambient sounds, with no spoken dialogues from characters.",
	SpokenSubtitlesOnly: "Communication is conveyed through text captions in Portuguese (Brazilian); no spoken voice from characters.",
}

// Compile renders a validated request into the Veo 3 prompt. It is pure and
// deterministic.
func Compile(req PromptRequest) string {
	var lines []string
	for _, s := range Sections(req) {
		lines = append(lines, s.Lines...)
	}
	return strings.Join(lines, lineSeparator)
}

// Sections returns the twelve prompt blocks in output order. Roman-numbered
// headers start with a newline and are kept as separate lines.
func Sections(req PromptRequest) []Section {
	pacing, pacingFound := pacingLine(req.AdditionalDetails)
	music, musicFound := musicLine(req.AdditionalDetails)

	return []Section{
		{Name: SectionCoreConcept, Lines: []string{
			fmt.Sprintf("**Core Concept:** Generate a highly detailed, %s video segment, optimized for Google Veo 3. The overall tone should be [Infer tone from genre/description - e.g., tense, comedic, awe-inspiring, melancholic].", cases.Lower(language.Und).String(req.VideoType)),
		}},
		{Name: SectionOverallStyle, Lines: []string{
			fmt.Sprintf("**Overall Style:** %s. Aim for expressive facial animations, nuanced character performances, photorealistic textures (unless a stylized look is specified), and sophisticated, purposeful camera work.", req.VisualStyle),
		}},
		{Name: SectionDialogues, Lines: []string{
			"**Dialogues and Language:** All spoken dialogues MUST be in **Portuguese (Brazilian)**. If character descriptions include specific sotaques (accents), they must be rendered authentically and naturally.",
		}},
		{Name: SectionCreativity, Lines: []string{
			fmt.Sprintf("**Creativity Level:** **%s**. This should guide the balance between strict adherence to the prompt and imaginative visual interpretations. Low creativity means more literal, High means more artistic license within the described bounds.", req.CreativityLevel),
		}},
		{Name: SectionScene, Lines: []string{
			"\n**II. Scene & Environment Details:**",
			fmt.Sprintf("**Primary Setting:** %s. Consider elements like: ", req.SceneDescription) + sceneChecklist,
		}},
		{Name: SectionCharacters, Lines: []string{
			"\n**III. Characters / Main Subjects:**",
			characterLine(req),
		}},
		{Name: SectionActions, Lines: actionLines(req)},
		{Name: SectionCinematography, Lines: []string{
			"\n**V. Cinematography & Visual Direction:**",
			cameraLine(req.CameraAngle),
		}},
		{Name: SectionPacing, Lines: []string{pacing}},
		{Name: SectionAudio, Lines: audioLines(req, music, musicFound)},
		{Name: SectionSubtitles, Lines: subtitleLines(req)},
		{Name: SectionFinalNotes, Lines: finalLines(req, pacingFound, musicFound)},
	}
}

func characterLine(req PromptRequest) string {
	if req.MainSubjects == "" {
		return noCharacters
	}
	line := fmt.Sprintf("**Main Focus:** %s.", req.MainSubjects)
	if req.HasSpecificAccent == Yes && req.AccentDescription != "" {
		line += fmt.Sprintf(" This character speaks with a **%s** accent in Portuguese (Brazilian). Ensure any dialogue provided for this character reflects this.", req.AccentDescription)
	} else {
		line += " Any dialogue for this character is in standard Portuguese (Brazilian)."
	}
	return line + characterChecklist
}

func actionLines(req PromptRequest) []string {
	lines := []string{"\n**IV. Key Actions, Narrative Beats & Scene Dialogues:**"}
	if req.MainActions != "" {
		lines = append(lines, fmt.Sprintf("**Core Events & Interactions:** %s. Describe the sequence and impact of these actions. ", req.MainActions)+
			"\n  - Specify the dynamics (e.g., \"a sudden, violent confrontation\", \"a slow, deliberate reveal\", \"a humorous misunderstanding escalating\").")
	} else {
		lines = append(lines, noActions)
	}
	if req.HasSceneDialogues == Yes && req.SceneDialoguesText != "" {
		quoted := strings.ReplaceAll(req.SceneDialoguesText, "\n", "\"\n  - \"")
		lines = append(lines, "**Additional Scene Dialogues:** The following dialogues occur in the scene, spoken in **Portuguese (Brazilian)** by relevant characters (not necessarily the main subject, or by off-screen characters if appropriate for the context):"+
			"\n  - \""+quoted+"\"")
	}
	return lines
}

func cameraLine(angle string) string {
	if angle == "" {
		return noCamera
	}
	return fmt.Sprintf("**Camera Work & Composition:** %s. Consider: ", angle) + cameraChecklist
}

func pacingLine(details string) (string, bool) {
	m, ok := pacingExtractor.Extract(details)
	if !ok {
		return defaultPacing, false
	}
	return fmt.Sprintf("**Pacing & Editing Style:** (Extracted from additional details) %s. (e.g., \"Fast-paced with quick, rhythmic cuts\", \"Slow, deliberate pacing with long takes and smooth transitions\").", m), true
}

func musicLine(details string) (string, bool) {
	m, ok := musicExtractor.Extract(details)
	if !ok {
		return "", false
	}
	return fmt.Sprintf("**Music (Optional):** (Extracted from additional details) %s. Specify genre, mood, and how it should interact with the scene (e.g., \"underscore, tense electronic\", \"prominent, uplifting orchestral score\").", m), true
}

func audioLines(req PromptRequest, music string, hasMusic bool) []string {
	lines := []string{
		"\n**VI. Audio Design:**",
		"**General Dialogue Approach:** " + spokenDirectives[req.SpokenLanguage],
	}
	if req.BackgroundSounds != "" {
		lines = append(lines, fmt.Sprintf("**Soundscape & Ambience:** Rich and immersive. Include: %s. Consider the quality of sound (e.g., \"clear and crisp\", \"distant and muffled\", \"echoing\").", req.BackgroundSounds))
	} else {
		lines = append(lines, defaultAmbience)
	}
	if hasMusic {
		lines = append(lines, music)
	}
	return lines
}

func subtitleLines(req PromptRequest) []string {
	state := "Disabled"
	if req.IncludeSubtitles {
		state = "Enabled (in Portuguese (Brazilian), accurately transcribing any spoken dialogue)"
	}
	lines := []string{
		"\n**VII. Subtitles & Negative Constraints:**",
		"**Subtitles:** " + state + ".",
	}
	if req.NegativePrompts != "" {
		lines = append(lines, fmt.Sprintf("**Negative Prompts (AVOID THESE):** Explicitly AVOID the following elements: %s. This includes ensuring no unwanted text overlays, glitches, or out-of-context elements.", req.NegativePrompts))
	}
	return lines
}

func finalLines(req PromptRequest, pacing, music bool) []string {
	lines := []string{"\n**VIII. Final Notes for AI:**"}
	if req.AdditionalDetails != "" {
		rest := residualDetails(req.AdditionalDetails, pacing, music)
		if validation.Length(rest) > minResidualDetailChars {
			lines = append(lines, fmt.Sprintf("**User's Additional Specifications (Other):** Carefully consider these user-provided details for further refinement: %s.", rest))
		}
	}
	return append(lines, closingDirective)
}

// Generate validates raw and compiles it. Validation failures come back as
// validation.Errors; anything unexpected during compilation is reported as
// a *domain.ProcessingError carrying the original detail.
func Generate(raw RawPromptRequest) (string, error) {
	return generate(raw, Compile)
}

func generate(raw RawPromptRequest, compile func(PromptRequest) string) (prompt string, err error) {
	req, err := Validate(raw)
	if err != nil {
		return "", err
	}
	defer func() {
		if r := recover(); r != nil {
			prompt = ""
			err = &domain.ProcessingError{Detail: fmt.Sprint(r)}
		}
	}()
	return compile(req), nil
}
