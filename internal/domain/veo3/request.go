// Package veo3 turns the prompt-generator form into the long-form instruction
// text fed to Google Veo 3.
package veo3

import (
	"net/url"
	"strings"
)

// YesNo is the form's two-state selector.
type YesNo string

const (
	Yes YesNo = "Sim"
	No  YesNo = "Não"
)

// CreativityLevel tells the video model how literally to follow the prompt.
type CreativityLevel string

const (
	CreativityLow    CreativityLevel = "Baixa"
	CreativityMedium CreativityLevel = "Média"
	CreativityHigh   CreativityLevel = "Alta"
)

// SpokenLanguage selects the general audio approach for dialogue.
type SpokenLanguage string

const (
	SpokenHasSpeech     SpokenLanguage = "Tem fala"
	SpokenNoSpeech      SpokenLanguage = "Sem fala"
	SpokenSubtitlesOnly SpokenLanguage = "Apenas legenda"
)

// DefaultVisualStyle applies when the form omits the visual style.
const DefaultVisualStyle = "cinematic and realistic"

// Field length bounds, in UTF-16 code units.
const (
	SceneDescriptionMin  = 10
	SceneDescriptionMax  = 2500
	MainSubjectsMax      = 4000
	AccentDescriptionMax = 200
	SceneDialoguesMax    = 2500
	MainActionsMax       = 2500
	VisualStyleMax       = 300
	CameraAngleMax       = 300
	AdditionalDetailsMax = 1500
	BackgroundSoundsMax  = 300
	NegativePromptsMax   = 300
)

// RawPromptRequest is the form as submitted. Pointer fields distinguish
// "absent" (defaulted) from "sent empty".
type RawPromptRequest struct {
	VideoType          *string `json:"videoType" yaml:"videoType"`
	SceneDescription   string  `json:"sceneDescription" yaml:"sceneDescription"`
	MainSubjects       string  `json:"mainSubjects,omitempty" yaml:"mainSubjects"`
	HasSpecificAccent  *string `json:"hasSpecificAccent,omitempty" yaml:"hasSpecificAccent"`
	AccentDescription  string  `json:"accentDescription,omitempty" yaml:"accentDescription"`
	HasSceneDialogues  *string `json:"hasSceneDialogues,omitempty" yaml:"hasSceneDialogues"`
	SceneDialoguesText string  `json:"sceneDialoguesText,omitempty" yaml:"sceneDialoguesText"`
	MainActions        string  `json:"mainActions,omitempty" yaml:"mainActions"`
	VisualStyle        *string `json:"visualStyle,omitempty" yaml:"visualStyle"`
	CameraAngle        string  `json:"cameraAngle,omitempty" yaml:"cameraAngle"`
	AdditionalDetails  string  `json:"additionalDetails,omitempty" yaml:"additionalDetails"`
	CreativityLevel    *string `json:"creativityLevel,omitempty" yaml:"creativityLevel"`
	SpokenLanguage     *string `json:"spokenLanguage,omitempty" yaml:"spokenLanguage"`
	IncludeSubtitles   *bool   `json:"includeSubtitles,omitempty" yaml:"includeSubtitles"`
	BackgroundSounds   string  `json:"backgroundSounds,omitempty" yaml:"backgroundSounds"`
	NegativePrompts    string  `json:"negativePrompts,omitempty" yaml:"negativePrompts"`
}

// PromptRequest is a validated form with every default applied. Obtain one
// through Validate.
type PromptRequest struct {
	VideoType          string          `json:"videoType"`
	SceneDescription   string          `json:"sceneDescription"`
	MainSubjects       string          `json:"mainSubjects"`
	HasSpecificAccent  YesNo           `json:"hasSpecificAccent"`
	AccentDescription  string          `json:"accentDescription"`
	HasSceneDialogues  YesNo           `json:"hasSceneDialogues"`
	SceneDialoguesText string          `json:"sceneDialoguesText"`
	MainActions        string          `json:"mainActions"`
	VisualStyle        string          `json:"visualStyle"`
	CameraAngle        string          `json:"cameraAngle"`
	AdditionalDetails  string          `json:"additionalDetails"`
	CreativityLevel    CreativityLevel `json:"creativityLevel"`
	SpokenLanguage     SpokenLanguage  `json:"spokenLanguage"`
	IncludeSubtitles   bool            `json:"includeSubtitles"`
	BackgroundSounds   string          `json:"backgroundSounds"`
	NegativePrompts    string          `json:"negativePrompts"`
}

// CustomPromptForm is the reduced "custom" generator: the fields it omits
// take their defaults.
type CustomPromptForm struct {
	VideoType         string `json:"videoType" yaml:"videoType"`
	SceneDescription  string `json:"sceneDescription" yaml:"sceneDescription"`
	MainSubjects      string `json:"mainSubjects,omitempty" yaml:"mainSubjects"`
	MainActions       string `json:"mainActions,omitempty" yaml:"mainActions"`
	VisualStyle       string `json:"visualStyle,omitempty" yaml:"visualStyle"`
	CameraAngle       string `json:"cameraAngle,omitempty" yaml:"cameraAngle"`
	AdditionalDetails string `json:"additionalDetails,omitempty" yaml:"additionalDetails"`
}

// CustomPromptFormFromQuery reads the prefill parameters the dashboard links
// use (?videoType=...&sceneDescription=...).
func CustomPromptFormFromQuery(q url.Values) CustomPromptForm {
	return CustomPromptForm{
		VideoType:         q.Get("videoType"),
		SceneDescription:  q.Get("sceneDescription"),
		MainSubjects:      q.Get("mainSubjects"),
		MainActions:       q.Get("mainActions"),
		VisualStyle:       q.Get("visualStyle"),
		CameraAngle:       q.Get("cameraAngle"),
		AdditionalDetails: q.Get("additionalDetails"),
	}
}

// Merge fills blank fields of f from prefill.
func (f CustomPromptForm) Merge(prefill CustomPromptForm) CustomPromptForm {
	pick := func(v, fallback string) string {
		if strings.TrimSpace(v) == "" {
			return fallback
		}
		return v
	}
	return CustomPromptForm{
		VideoType:         pick(f.VideoType, prefill.VideoType),
		SceneDescription:  pick(f.SceneDescription, prefill.SceneDescription),
		MainSubjects:      pick(f.MainSubjects, prefill.MainSubjects),
		MainActions:       pick(f.MainActions, prefill.MainActions),
		VisualStyle:       pick(f.VisualStyle, prefill.VisualStyle),
		CameraAngle:       pick(f.CameraAngle, prefill.CameraAngle),
		AdditionalDetails: pick(f.AdditionalDetails, prefill.AdditionalDetails),
	}
}

// Raw converts the reduced form into a full submission. An empty visual
// style counts as absent.
func (f CustomPromptForm) Raw() RawPromptRequest {
	raw := RawPromptRequest{
		SceneDescription:  f.SceneDescription,
		MainSubjects:      f.MainSubjects,
		MainActions:       f.MainActions,
		CameraAngle:       f.CameraAngle,
		AdditionalDetails: f.AdditionalDetails,
	}
	if f.VideoType != "" {
		raw.VideoType = ptr(f.VideoType)
	}
	if f.VisualStyle != "" {
		raw.VisualStyle = ptr(f.VisualStyle)
	}
	return raw
}

func ptr[T any](v T) *T {
	return &v
}
