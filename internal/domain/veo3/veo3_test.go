package veo3

import (
	"errors"
	"net/url"
	"strings"
	"testing"

	"academy/internal/domain"
	"academy/internal/domain/validation"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validRaw() RawPromptRequest {
	return RawPromptRequest{
		VideoType:        ptr("drama"),
		SceneDescription: "Uma praia ao amanhecer",
	}
}

func mustValidate(t *testing.T, raw RawPromptRequest) PromptRequest {
	t.Helper()
	req, err := Validate(raw)
	require.NoError(t, err)
	return req
}

func fieldErrors(t *testing.T, err error) validation.Errors {
	t.Helper()
	var verrs validation.Errors
	require.True(t, errors.As(err, &verrs), "want validation.Errors, got %v", err)
	return verrs
}

func TestValidateAppliesDefaults(t *testing.T) {
	req := mustValidate(t, validRaw())

	assert.Equal(t, "drama", req.VideoType)
	assert.Equal(t, No, req.HasSpecificAccent)
	assert.Equal(t, No, req.HasSceneDialogues)
	assert.Equal(t, DefaultVisualStyle, req.VisualStyle)
	assert.Equal(t, CreativityMedium, req.CreativityLevel)
	assert.Equal(t, SpokenNoSpeech, req.SpokenLanguage)
	assert.False(t, req.IncludeSubtitles)
}

func TestValidateCollectsEveryFieldError(t *testing.T) {
	raw := RawPromptRequest{
		SceneDescription: "curta",
		CameraAngle:      strings.Repeat("x", CameraAngleMax+1),
		CreativityLevel:  ptr("Extrema"),
	}
	_, err := Validate(raw)
	verrs := fieldErrors(t, err)

	require.Len(t, verrs, 4)
	assert.Equal(t, FieldVideoType, verrs[0].Field)
	assert.Equal(t, validation.RuleRequired, verrs[0].Rule)
	assert.Equal(t, FieldSceneDescription, verrs[1].Field)
	assert.Equal(t, validation.RuleMinLength, verrs[1].Rule)
	assert.Equal(t, FieldCameraAngle, verrs[2].Field)
	assert.Equal(t, validation.RuleMaxLength, verrs[2].Rule)
	assert.Equal(t, FieldCreativityLevel, verrs[3].Field)
	assert.Equal(t, validation.RuleOneOf, verrs[3].Rule)
}

func TestValidateBlankVideoTypeIsMissing(t *testing.T) {
	raw := validRaw()
	raw.VideoType = ptr("   ")
	_, err := Validate(raw)
	assert.True(t, fieldErrors(t, err).Has(FieldVideoType))
}

func TestValidateCountsUTF16Units(t *testing.T) {
	raw := validRaw()
	// five astral emoji are ten UTF-16 units
	raw.SceneDescription = strings.Repeat("\xf0\x9f\x98\x80", 5)
	_, err := Validate(raw)
	require.NoError(t, err)

	raw.SceneDescription = strings.Repeat("\xf0\x9f\x98\x80", 4) + "a"
	_, err = Validate(raw)
	assert.True(t, fieldErrors(t, err).Has(FieldSceneDescription))
}

func TestValidateConditionalRequirements(t *testing.T) {
	tests := []struct {
		name  string
		mut   func(*RawPromptRequest)
		field string
		rule  string
	}{
		{
			name: "accent flagged without description",
			mut: func(r *RawPromptRequest) {
				r.HasSpecificAccent = ptr(string(Yes))
			},
			field: FieldAccentDescription,
			rule:  "accent-description-required",
		},
		{
			name: "accent flagged with whitespace description",
			mut: func(r *RawPromptRequest) {
				r.HasSpecificAccent = ptr(string(Yes))
				r.AccentDescription = " \t\n"
			},
			field: FieldAccentDescription,
			rule:  "accent-description-required",
		},
		{
			name: "dialogues flagged without text",
			mut: func(r *RawPromptRequest) {
				r.HasSceneDialogues = ptr(string(Yes))
				r.SceneDialoguesText = "  "
			},
			field: FieldSceneDialoguesText,
			rule:  "scene-dialogues-required",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw := validRaw()
			tt.mut(&raw)
			_, err := Validate(raw)
			verrs := fieldErrors(t, err)
			require.Len(t, verrs, 1)
			assert.Equal(t, tt.field, verrs[0].Field)
			assert.Equal(t, tt.rule, verrs[0].Rule)
		})
	}
}

func TestValidateConditionalSkippedAfterBaseError(t *testing.T) {
	raw := validRaw()
	raw.HasSpecificAccent = ptr(string(Yes))
	raw.AccentDescription = strings.Repeat(" ", AccentDescriptionMax+1)

	_, err := Validate(raw)
	verrs := fieldErrors(t, err)
	require.Len(t, verrs, 1)
	assert.Equal(t, validation.RuleMaxLength, verrs[0].Rule)
}

func TestValidateConditionalSatisfied(t *testing.T) {
	raw := validRaw()
	raw.HasSpecificAccent = ptr(string(Yes))
	raw.AccentDescription = "carioca"
	raw.HasSceneDialogues = ptr(string(Yes))
	raw.SceneDialoguesText = "Bom dia!"
	_, err := Validate(raw)
	assert.NoError(t, err)
}

func TestValidateMessagesLocalized(t *testing.T) {
	raw := validRaw()
	raw.HasSceneDialogues = ptr(string(Yes))
	_, err := Validate(raw)
	verrs := fieldErrors(t, err)

	assert.Equal(t, "Por favor, insira as falas da cena.", verrs[0].Message)
	assert.Equal(t, "Please enter the scene dialogues.", verrs.Localize(validation.MatchLocale("en"))[0].Message)
}

func TestCompileIsDeterministic(t *testing.T) {
	raw := validRaw()
	raw.AdditionalDetails = "Ritmo frenético. Trilha sonora de tambores. Muitas cores vivas no cenário"
	req := mustValidate(t, raw)
	assert.Equal(t, Compile(req), Compile(req))
}

func TestSectionsAlwaysTwelveInOrder(t *testing.T) {
	want := []string{
		SectionCoreConcept, SectionOverallStyle, SectionDialogues, SectionCreativity,
		SectionScene, SectionCharacters, SectionActions, SectionCinematography,
		SectionPacing, SectionAudio, SectionSubtitles, SectionFinalNotes,
	}
	full := validRaw()
	full.MainSubjects = "Uma pescadora idosa"
	full.HasSceneDialogues = ptr(string(Yes))
	full.SceneDialoguesText = "Olá"
	full.MainActions = "Ela puxa a rede"
	full.CameraAngle = "Plano aberto"
	full.AdditionalDetails = "Música suave. Ritmo lento."
	full.BackgroundSounds = "ondas"
	full.NegativePrompts = "texto na tela"

	for name, raw := range map[string]RawPromptRequest{"minimal": validRaw(), "full": full} {
		t.Run(name, func(t *testing.T) {
			sections := Sections(mustValidate(t, raw))
			got := make([]string, 0, len(sections))
			for _, s := range sections {
				got = append(got, s.Name)
				assert.NotEmpty(t, s.Lines)
			}
			assert.Equal(t, want, got)

			out := Compile(mustValidate(t, raw))
			last := -1
			for _, marker := range []string{
				"**Core Concept:**", "**Overall Style:**", "**Dialogues and Language:**", "**Creativity Level:**",
				"**II. Scene", "**III. Characters", "**IV. Key Actions", "**V. Cinematography",
				"**Pacing & Editing Style:**", "**VI. Audio Design:**", "**VII. Subtitles", "**VIII. Final Notes",
			} {
				idx := strings.Index(out, marker)
				require.Greater(t, idx, last, marker)
				last = idx
			}
		})
	}
}

func TestCompileJoinsLinesWithBlankLines(t *testing.T) {
	out := Compile(mustValidate(t, validRaw()))
	assert.True(t, strings.HasPrefix(out, "**Core Concept:** Generate a highly detailed, drama video segment"))
	assert.Contains(t, out, "camera work.\n\n**Dialogues and Language:**")
	assert.Contains(t, out, "naturally.\n\n**Creativity Level:** **Média**.")
	assert.Contains(t, out, "bounds.\n\n\n**II. Scene & Environment Details:**\n\n**Primary Setting:** Uma praia ao amanhecer. Consider elements like: \n  - **Time of Day & Light:**")
	assert.True(t, strings.HasSuffix(out, "\n\n"+closingDirective))
}

func TestCompileLowercasesGenre(t *testing.T) {
	raw := validRaw()
	raw.VideoType = ptr("AÇÃO")
	out := Compile(mustValidate(t, raw))
	assert.Contains(t, out, "highly detailed, ação video segment")
}

func TestCompileCharactersFallback(t *testing.T) {
	out := Compile(mustValidate(t, validRaw()))
	assert.Contains(t, out, noCharacters)
	assert.NotContains(t, out, "**Main Focus:**")
}

func TestCompileCharacterAccent(t *testing.T) {
	raw := validRaw()
	raw.MainSubjects = "Um pescador"
	raw.HasSpecificAccent = ptr(string(Yes))
	raw.AccentDescription = "nordestino"
	out := Compile(mustValidate(t, raw))
	assert.Contains(t, out, "**Main Focus:** Um pescador. This character speaks with a **nordestino** accent in Portuguese (Brazilian).")
	assert.Contains(t, out, "\n    - **Props:** Objects they carry or interact with significantly.")

	raw.HasSpecificAccent = ptr(string(No))
	out = Compile(mustValidate(t, raw))
	assert.Contains(t, out, "**Main Focus:** Um pescador. Any dialogue for this character is in standard Portuguese (Brazilian).")
	assert.NotContains(t, out, "nordestino")
}

func TestCompileDialogueQuoting(t *testing.T) {
	raw := validRaw()
	raw.HasSceneDialogues = ptr(string(Yes))
	raw.SceneDialoguesText = "A\nB"
	out := Compile(mustValidate(t, raw))
	assert.Contains(t, out, "if appropriate for the context):\n  - \"A\"\n  - \"B\"")

	raw.HasSceneDialogues = ptr(string(No))
	out = Compile(mustValidate(t, raw))
	assert.NotContains(t, out, "**Additional Scene Dialogues:**")
}

func TestCompileActionsAndCamera(t *testing.T) {
	out := Compile(mustValidate(t, validRaw()))
	assert.Contains(t, out, noActions)
	assert.Contains(t, out, noCamera)

	raw := validRaw()
	raw.MainActions = "Ondas quebram"
	raw.CameraAngle = "Drone"
	out = Compile(mustValidate(t, raw))
	assert.Contains(t, out, "**Core Events & Interactions:** Ondas quebram. Describe the sequence and impact of these actions. \n  - Specify the dynamics")
	assert.Contains(t, out, "**Camera Work & Composition:** Drone. Consider: \n  - **Shot Types:**")
}

func TestCompilePacingKeywordPriority(t *testing.T) {
	raw := validRaw()
	raw.AdditionalDetails = "Edição lenta no final.\nRitmo rápido no início."
	out := Compile(mustValidate(t, raw))

	assert.Contains(t, out, "**Pacing & Editing Style:** (Extracted from additional details) Ritmo rápido no início.. (e.g.,")
	assert.NotContains(t, out, "details) Edição lenta")
	// the pacing strip consumes the first match of every keyword
	assert.NotContains(t, out, "**User's Additional Specifications (Other):**")
}

func TestCompilePacingGreedyWholeLine(t *testing.T) {
	raw := validRaw()
	raw.AdditionalDetails = "Cenas com ritmo acelerado. Depois um final calmo"
	out := Compile(mustValidate(t, raw))
	assert.Contains(t, out, "(Extracted from additional details) Cenas com ritmo acelerado. Depois um final calmo. (e.g.,")
}

func TestCompilePacingCrossesLinesUntilPeriod(t *testing.T) {
	m, ok := pacingExtractor.Extract("ritmo lento\nUse cores quentes.")
	require.True(t, ok)
	assert.Equal(t, "ritmo lento\nUse cores quentes.", m)
}

func TestCompilePacingDefault(t *testing.T) {
	out := Compile(mustValidate(t, validRaw()))
	assert.Contains(t, out, defaultPacing)
	assert.NotContains(t, out, "**Music (Optional):**")
}

func TestCompileMusicExtraction(t *testing.T) {
	raw := validRaw()
	raw.AdditionalDetails = "Soundtrack de piano. Muita música eletrônica."
	out := Compile(mustValidate(t, raw))
	// música precedes soundtrack in the keyword list
	assert.Contains(t, out, "**Music (Optional):** (Extracted from additional details) Soundtrack de piano. Muita música eletrônica.. Specify genre")
}

func TestKeywordExtractorFolding(t *testing.T) {
	_, ok := musicExtractor.Extract("TRILHA SONORA marcante.")
	assert.True(t, ok)

	_, ok = musicExtractor.Extract("MÚSICA alta.")
	assert.True(t, ok)

	// Kelvin sign is not folded onto k
	_, ok = musicExtractor.Extract("SOUNDTRAC\xe2\x84\xaa forte.")
	assert.False(t, ok)
}

func TestKeywordExtractorStrip(t *testing.T) {
	got := pacingExtractor.Strip("Use cores quentes e saturadas\nritmo lento.")
	assert.Equal(t, "Use cores quentes e saturadas", got)

	assert.Equal(t, "sem palavras-chave", pacingExtractor.Strip("  sem palavras-chave \n"))
}

func TestCompileResidualDetails(t *testing.T) {
	tests := []struct {
		name    string
		details string
		want    string
	}{
		{
			name:    "residual after pacing",
			details: "Use cores quentes e saturadas\nritmo lento.",
			want:    "refinement: Use cores quentes e saturadas.",
		},
		{
			name:    "untouched without extraction",
			details: "  Luz suave  ",
			want:    "refinement:   Luz suave  .",
		},
		{
			name:    "six characters kept",
			details: "abcdef",
			want:    "refinement: abcdef.",
		},
		{
			name:    "five characters dropped",
			details: "abcde",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw := validRaw()
			raw.AdditionalDetails = tt.details
			out := Compile(mustValidate(t, raw))
			if tt.want == "" {
				assert.NotContains(t, out, "**User's Additional Specifications (Other):**")
				return
			}
			assert.Contains(t, out, "**User's Additional Specifications (Other):** Carefully consider these user-provided details for further "+tt.want)
		})
	}
}

func TestCompileAudioDirectives(t *testing.T) {
	for lang, directive := range spokenDirectives {
		raw := validRaw()
		raw.SpokenLanguage = ptr(string(lang))
		out := Compile(mustValidate(t, raw))
		assert.Contains(t, out, "**General Dialogue Approach:** "+directive)
	}

	raw := validRaw()
	raw.BackgroundSounds = "gaivotas"
	out := Compile(mustValidate(t, raw))
	assert.Contains(t, out, "Rich and immersive. Include: gaivotas. Consider the quality of sound")
	assert.NotContains(t, out, defaultAmbience)
}

func TestCompileSubtitlesAndNegativePrompts(t *testing.T) {
	raw := validRaw()
	raw.IncludeSubtitles = ptr(true)
	raw.NegativePrompts = "logotipos"
	out := Compile(mustValidate(t, raw))
	assert.Contains(t, out, "**Subtitles:** Enabled (in Portuguese (Brazilian), accurately transcribing any spoken dialogue).")
	assert.Contains(t, out, "Explicitly AVOID the following elements: logotipos.")

	out = Compile(mustValidate(t, validRaw()))
	assert.Contains(t, out, "**Subtitles:** Disabled.")
	assert.NotContains(t, out, "Negative Prompts")
}

func TestGenerateDramaScenario(t *testing.T) {
	raw := RawPromptRequest{
		VideoType:          ptr("drama"),
		SceneDescription:   "Uma praia ao amanhecer",
		MainSubjects:       "",
		HasSpecificAccent:  ptr("Não"),
		HasSceneDialogues:  ptr("Não"),
		MainActions:        "",
		VisualStyle:        ptr("cinematic and realistic"),
		CameraAngle:        "",
		AdditionalDetails:  "",
		CreativityLevel:    ptr("Média"),
		SpokenLanguage:     ptr("Sem fala"),
		IncludeSubtitles:   ptr(false),
		BackgroundSounds:   "",
		NegativePrompts:    "",
		AccentDescription:  "",
		SceneDialoguesText: "",
	}
	out, err := Generate(raw)
	require.NoError(t, err)

	assert.Contains(t, out, "drama")
	assert.Contains(t, out, "Uma praia ao amanhecer")
	assert.Contains(t, out, "The video primarily uses visual storytelling and ambient sounds, with no spoken dialogues from characters.")
	assert.Contains(t, out, "Emphasize emotional impact and visual storytelling.")
	assert.NotContains(t, out, "Negative Prompts")
}

func TestGenerateReportsCompileFailure(t *testing.T) {
	raw := RawPromptRequest{VideoType: ptr("drama"), SceneDescription: "Uma praia ao amanhecer"}
	_, err := generate(raw, func(PromptRequest) string {
		var sections []string
		return sections[3]
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInternalProcessing))

	var perr *domain.ProcessingError
	require.True(t, errors.As(err, &perr))
	assert.Contains(t, perr.Detail, "index out of range")
}

func TestGenerateRejectsInvalidInput(t *testing.T) {
	_, err := Generate(RawPromptRequest{})
	require.Error(t, err)
	assert.False(t, errors.Is(err, domain.ErrInternalProcessing))
	assert.True(t, fieldErrors(t, err).Has(FieldSceneDescription))
}

func TestCustomPromptForm(t *testing.T) {
	q := url.Values{}
	q.Set("videoType", "comedy")
	q.Set("sceneDescription", "Um gato tentando pegar um peixe")
	prefill := CustomPromptFormFromQuery(q)

	form := CustomPromptForm{MainActions: "O gato escorrega"}.Merge(prefill)
	assert.Equal(t, "comedy", form.VideoType)
	assert.Equal(t, "O gato escorrega", form.MainActions)

	req := mustValidate(t, form.Raw())
	assert.Equal(t, DefaultVisualStyle, req.VisualStyle)
	assert.Equal(t, CreativityMedium, req.CreativityLevel)

	_, err := Validate(CustomPromptForm{SceneDescription: "Um gato tentando pegar um peixe"}.Raw())
	assert.True(t, fieldErrors(t, err).Has(FieldVideoType))
}
