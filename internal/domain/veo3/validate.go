package veo3

import (
	"academy/internal/domain/validation"
)

// Field names as they appear on the wire and in validation errors.
const (
	FieldVideoType          = "videoType"
	FieldSceneDescription   = "sceneDescription"
	FieldMainSubjects       = "mainSubjects"
	FieldHasSpecificAccent  = "hasSpecificAccent"
	FieldAccentDescription  = "accentDescription"
	FieldHasSceneDialogues  = "hasSceneDialogues"
	FieldSceneDialoguesText = "sceneDialoguesText"
	FieldMainActions        = "mainActions"
	FieldVisualStyle        = "visualStyle"
	FieldCameraAngle        = "cameraAngle"
	FieldAdditionalDetails  = "additionalDetails"
	FieldCreativityLevel    = "creativityLevel"
	FieldSpokenLanguage     = "spokenLanguage"
	FieldBackgroundSounds   = "backgroundSounds"
	FieldNegativePrompts    = "negativePrompts"
)

var (
	yesNoOptions      = []string{string(Yes), string(No)}
	creativityOptions = []string{string(CreativityLow), string(CreativityMedium), string(CreativityHigh)}
	spokenOptions     = []string{string(SpokenHasSpeech), string(SpokenNoSpeech), string(SpokenSubtitlesOnly)}
)

type lengthRule struct {
	field string
	value func(RawPromptRequest) string
	max   int
	key   string
}

var maxLengthRules = []lengthRule{
	{FieldSceneDescription, func(r RawPromptRequest) string { return r.SceneDescription }, SceneDescriptionMax, validation.MsgSceneDescriptionMax},
	{FieldMainSubjects, func(r RawPromptRequest) string { return r.MainSubjects }, MainSubjectsMax, validation.MsgMainSubjectsMax},
	{FieldAccentDescription, func(r RawPromptRequest) string { return r.AccentDescription }, AccentDescriptionMax, validation.MsgAccentDescriptionMax},
	{FieldSceneDialoguesText, func(r RawPromptRequest) string { return r.SceneDialoguesText }, SceneDialoguesMax, validation.MsgSceneDialoguesMax},
	{FieldMainActions, func(r RawPromptRequest) string { return r.MainActions }, MainActionsMax, validation.MsgMainActionsMax},
	{FieldVisualStyle, func(r RawPromptRequest) string { return deref(r.VisualStyle, "") }, VisualStyleMax, validation.MsgVisualStyleMax},
	{FieldCameraAngle, func(r RawPromptRequest) string { return r.CameraAngle }, CameraAngleMax, validation.MsgCameraAngleMax},
	{FieldAdditionalDetails, func(r RawPromptRequest) string { return r.AdditionalDetails }, AdditionalDetailsMax, validation.MsgAdditionalDetailsMax},
	{FieldBackgroundSounds, func(r RawPromptRequest) string { return r.BackgroundSounds }, BackgroundSoundsMax, validation.MsgBackgroundSoundsMax},
	{FieldNegativePrompts, func(r RawPromptRequest) string { return r.NegativePrompts }, NegativePromptsMax, validation.MsgNegativePromptsMax},
}

// conditionalRule makes field mandatory whenever when holds.
type conditionalRule struct {
	name  string
	field string
	when  func(PromptRequest) bool
	value func(PromptRequest) string
	key   string
}

var conditionalRules = []conditionalRule{
	{
		name:  "accent-description-required",
		field: FieldAccentDescription,
		when:  func(r PromptRequest) bool { return r.HasSpecificAccent == Yes },
		value: func(r PromptRequest) string { return r.AccentDescription },
		key:   validation.MsgAccentDescriptionNeeded,
	},
	{
		name:  "scene-dialogues-required",
		field: FieldSceneDialoguesText,
		when:  func(r PromptRequest) bool { return r.HasSceneDialogues == Yes },
		value: func(r PromptRequest) string { return r.SceneDialoguesText },
		key:   validation.MsgSceneDialoguesNeeded,
	},
}

// Validate checks every field, then the conditional requirements, and
// returns the defaulted request. All violations are reported together as
// validation.Errors. A conditional requirement is not reported on a field
// that already failed a base check.
func Validate(raw RawPromptRequest) (PromptRequest, error) {
	c := validation.NewCollector()

	c.Required(FieldVideoType, deref(raw.VideoType, ""), validation.MsgVideoTypeRequired)
	c.MinLength(FieldSceneDescription, raw.SceneDescription, SceneDescriptionMin, validation.MsgSceneDescriptionMin)
	for _, rule := range maxLengthRules {
		if c.Has(rule.field) {
			continue
		}
		c.MaxLength(rule.field, rule.value(raw), rule.max, rule.key)
	}

	req := PromptRequest{
		VideoType:          deref(raw.VideoType, ""),
		SceneDescription:   raw.SceneDescription,
		MainSubjects:       raw.MainSubjects,
		HasSpecificAccent:  YesNo(deref(raw.HasSpecificAccent, string(No))),
		AccentDescription:  raw.AccentDescription,
		HasSceneDialogues:  YesNo(deref(raw.HasSceneDialogues, string(No))),
		SceneDialoguesText: raw.SceneDialoguesText,
		MainActions:        raw.MainActions,
		VisualStyle:        deref(raw.VisualStyle, DefaultVisualStyle),
		CameraAngle:        raw.CameraAngle,
		AdditionalDetails:  raw.AdditionalDetails,
		CreativityLevel:    CreativityLevel(deref(raw.CreativityLevel, string(CreativityMedium))),
		SpokenLanguage:     SpokenLanguage(deref(raw.SpokenLanguage, string(SpokenNoSpeech))),
		IncludeSubtitles:   deref(raw.IncludeSubtitles, false),
		BackgroundSounds:   raw.BackgroundSounds,
		NegativePrompts:    raw.NegativePrompts,
	}

	c.OneOf(FieldHasSpecificAccent, string(req.HasSpecificAccent), yesNoOptions)
	c.OneOf(FieldHasSceneDialogues, string(req.HasSceneDialogues), yesNoOptions)
	c.OneOf(FieldCreativityLevel, string(req.CreativityLevel), creativityOptions)
	c.OneOf(FieldSpokenLanguage, string(req.SpokenLanguage), spokenOptions)

	for _, rule := range conditionalRules {
		if !rule.when(req) || c.Has(rule.field) {
			continue
		}
		if validation.TrimForm(rule.value(req)) == "" {
			c.Add(rule.field, rule.name, rule.key)
		}
	}

	if err := c.Err(); err != nil {
		return PromptRequest{}, err
	}
	return req, nil
}

func deref[T any](p *T, fallback T) T {
	if p == nil {
		return fallback
	}
	return *p
}
