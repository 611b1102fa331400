package validation

import (
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// DefaultLanguage is the language of the academy's forms.
var DefaultLanguage = language.BrazilianPortuguese

var supported = []language.Tag{language.BrazilianPortuguese, language.English}

var matcher = language.NewMatcher(supported)

// MatchLocale maps a locale hint ("pt", "en-US", "pt-BR,en;q=0.8") onto a supported tag.
func MatchLocale(locale string) language.Tag {
	locale = strings.TrimSpace(locale)
	if locale == "" {
		return DefaultLanguage
	}
	tags, _, err := language.ParseAcceptLanguage(locale)
	if err != nil || len(tags) == 0 {
		return DefaultLanguage
	}
	_, idx, conf := matcher.Match(tags...)
	if conf == language.No {
		return DefaultLanguage
	}
	return supported[idx]
}

// Message keys. Keys double as the English rendering.
const (
	MsgInvalidOption = "Invalid option %q; accepted values: %s."

	MsgVideoTypeRequired       = "Please select the video type (genre)."
	MsgSceneDescriptionMin     = "Scene description must have at least %d characters."
	MsgSceneDescriptionMax     = "Scene description cannot exceed %d characters."
	MsgMainSubjectsMax         = "Character details cannot exceed %d characters."
	MsgAccentDescriptionMax    = "Accent description cannot exceed %d characters."
	MsgSceneDialoguesMax       = "Scene dialogues cannot exceed %d characters."
	MsgMainActionsMax          = "Main actions cannot exceed %d characters."
	MsgVisualStyleMax          = "Visual style cannot exceed %d characters."
	MsgCameraAngleMax          = "Camera angle cannot exceed %d characters."
	MsgAdditionalDetailsMax    = "Additional details cannot exceed %d characters."
	MsgBackgroundSoundsMax     = "Background sounds cannot exceed %d characters."
	MsgNegativePromptsMax      = "Negative prompts cannot exceed %d characters."
	MsgAccentDescriptionNeeded = "Please describe the accent type."
	MsgSceneDialoguesNeeded    = "Please enter the scene dialogues."

	MsgTopicMin = "Please describe the topic with at least %d characters."
	MsgTopicMax = "The topic description cannot exceed %d characters."

	MsgQuestionRequired = "The question cannot be empty."

	MsgEmailInvalid     = "Please enter a valid email."
	MsgPasswordMin      = "The password must have at least %d characters."
	MsgInvalidLogin     = "Invalid credentials. Please try again."
	MsgInternalFailure  = "Internal failure while processing the prompt data. Detail: %s"
	MsgCommunication    = "Error communicating with the AI service while generating the system prompt."
	MsgUpstreamFailure  = "Failed to call the AI service: %s"
	MsgUnexpectedOutput = "Could not extract the generated text from the AI service response."
)

var ptBR = map[string]string{
	MsgInvalidOption: "Opção inválida %q; valores aceitos: %s.",

	MsgVideoTypeRequired:       "Por favor, selecione o tipo de vídeo (gênero).",
	MsgSceneDescriptionMin:     "Descrição da cena deve ter pelo menos %d caracteres.",
	MsgSceneDescriptionMax:     "Descrição da cena não pode exceder %d caracteres.",
	MsgMainSubjectsMax:         "Detalhes do personagem não podem exceder %d caracteres.",
	MsgAccentDescriptionMax:    "Descrição do sotaque não pode exceder %d caracteres.",
	MsgSceneDialoguesMax:       "Falas da cena não podem exceder %d caracteres.",
	MsgMainActionsMax:          "Ações principais não podem exceder %d caracteres.",
	MsgVisualStyleMax:          "Estilo visual não pode exceder %d caracteres.",
	MsgCameraAngleMax:          "Ângulo da câmera não pode exceder %d caracteres.",
	MsgAdditionalDetailsMax:    "Detalhes adicionais não podem exceder %d caracteres.",
	MsgBackgroundSoundsMax:     "Sons de fundo não podem exceder %d caracteres.",
	MsgNegativePromptsMax:      "Prompts negativos não podem exceder %d caracteres.",
	MsgAccentDescriptionNeeded: "Por favor, descreva o tipo de sotaque.",
	MsgSceneDialoguesNeeded:    "Por favor, insira as falas da cena.",

	MsgTopicMin: "Descreva o tópico com pelo menos %d caracteres.",
	MsgTopicMax: "A descrição do tópico não pode exceder %d caracteres.",

	MsgQuestionRequired: "A pergunta não pode estar vazia.",

	MsgEmailInvalid:     "Por favor, insira um email válido.",
	MsgPasswordMin:      "A senha deve ter pelo menos %d caracteres.",
	MsgInvalidLogin:     "Credenciais inválidas. Por favor, tente novamente.",
	MsgInternalFailure:  "Falha no processamento interno dos dados do prompt. Detalhe: %s",
	MsgCommunication:    "Erro na comunicação com o serviço de IA para gerar o prompt de sistema.",
	MsgUpstreamFailure:  "Falha ao chamar o serviço de IA: %s",
	MsgUnexpectedOutput: "Não foi possível extrair o texto gerado da resposta do serviço de IA.",
}

func init() {
	for key, msg := range ptBR {
		if err := message.SetString(language.BrazilianPortuguese, key, msg); err != nil {
			panic(err)
		}
	}
}
