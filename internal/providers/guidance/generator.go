// Package guidance produces "system prompts": reusable instruction sets that a
// student pastes into another model to help it write Veo 3 prompts.
package guidance

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"academy/internal/domain/validation"
)

// Topic bounds, in UTF-16 code units.
const (
	TopicMin = 10
	TopicMax = 500

	FieldTopic = "topic"
)

var (
	// ErrCommunication wraps transport-level failures talking to the model host.
	ErrCommunication = errors.New("guidance: communication failure")
	// ErrUnexpectedPayload is returned when a 2xx answer carries no generated text.
	ErrUnexpectedPayload = errors.New("guidance: unexpected payload")
)

// UpstreamError reports an error the model host answered with.
type UpstreamError struct {
	StatusCode int
	Detail     string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("guidance: upstream status %d: %s", e.StatusCode, e.Detail)
}

// Temporary reports whether the host signalled overload or a cold model.
func (e *UpstreamError) Temporary() bool {
	return e.StatusCode == http.StatusServiceUnavailable || e.StatusCode == http.StatusTooManyRequests
}

// Generator turns a topic into a system prompt.
type Generator interface {
	Generate(ctx context.Context, topic string) (string, error)
}

// ValidateTopic applies the instruction-creator form bounds.
func ValidateTopic(topic string) error {
	c := validation.NewCollector()
	if c.MinLength(FieldTopic, topic, TopicMin, validation.MsgTopicMin) {
		c.MaxLength(FieldTopic, topic, TopicMax, validation.MsgTopicMax)
	}
	return c.Err()
}

const topicPlaceholder = "{{{userInputTopic}}}"

const metaPrompt = `Você é um especialista em engenharia de prompts e na criação de prompts de sistema para modelos de IA generativa de vídeo, como o Google Veo 3.
Sua tarefa é gerar um conjunto de diretrizes detalhadas (um 'prompt de sistema') que um usuário poderá fornecer a outra IA para criar prompts de vídeo cinematográficos.
O usuário fornecerá um tópico ou objetivo principal. Baseado nisso, você deve elaborar o prompt de sistema.

O prompt de sistema gerado deve instruir a IA final a incluir, quando relevante para o tópico do usuário:
- Sugestões de movimentos de câmera (ex: POV, travelling, drone, close-up, plongée, contra-plongée, panorâmica, tilt).
- Tipos de ambientação, com foco no Brasil se o tópico sugerir (ex: urbano moderno, favela vibrante, sertão árido, praias paradisíacas, floresta amazônica densa, centros históricos coloniais, festas populares).
- Detalhes sobre descrição de personagens (aparência física, vestuário, adereços, arquétipos, motivações).
- Ênfase em expressões faciais e linguagem corporal para transmitir emoções específicas.
- Potencial para diálogo curto, impactante e natural em português brasileiro, se aplicável.
- Estrutura temporal para o vídeo (ex: divisão por segmentos de tempo como 0-2s, 3-5s, 6-8s, ou introdução, desenvolvimento, clímax).
- Estilo visual e atmosfera (ex: cinematográfico realista, documental imersivo, onírico surreal, suspense sombrio, comédia vibrante, nostálgico sépia).
- Considerar elementos narrativos como tom (ex: épico, íntimo, humorístico, tenso), ritmo (ex: rápido, lento, progressivo) e público-alvo.
- Uso de luz e cor para criar o ambiente desejado.
- Efeitos especiais sutis ou proeminentes, se o tópico pedir.

O resultado que você gerar deve ser APENAS o conjunto de diretrizes (o prompt de sistema), pronto para ser copiado e usado. Não inclua introduções como 'Aqui está o prompt de sistema:' ou qualquer texto explicativo seu.

Tópico/Objetivo fornecido pelo usuário: {{{userInputTopic}}}

Seu prompt de sistema gerado:`

const fallbackTemplate = `AVISO: A HUGGING_FACE_API_KEY não está configurada no ambiente. A funcionalidade completa de geração de prompt de sistema está desabilitada.
Este é um exemplo genérico de prompt de sistema que você pode adaptar:

"Você é uma IA assistente para criação de prompts de vídeo. Com base no tópico do usuário, gere um prompt de vídeo detalhado.
O prompt deve considerar:
- Tópico: [Tópico fornecido pelo usuário aqui: {{{userInputTopic}}}]
- Estilo Visual: (ex: cinematográfico, documental, animação)
- Ambientação: (ex: local, hora do dia, atmosfera)
- Personagens: (ex: descrição física, vestuário, emoções)
- Ações Principais: (ex: o que acontece na cena)
- Movimentos de Câmera: (ex: close-up, travelling, drone)
- Áudio: (ex: diálogos em português brasileiro, trilha sonora, efeitos sonoros)
- Elementos a Evitar: (ex: texto na tela, baixa qualidade)

Lembre-se de instruir a IA final a ser criativa, mas respeitar as diretrizes fornecidas."

Para habilitar a geração de prompts de sistema pela IA da Hugging Face, configure a HUGGING_FACE_API_KEY.`

// MetaPrompt is the instruction sent to the hosted model for topic.
func MetaPrompt(topic string) string {
	return strings.Replace(metaPrompt, topicPlaceholder, topic, 1)
}

// FallbackPrompt is the canned system prompt served when no credential is configured.
func FallbackPrompt(topic string) string {
	return strings.Replace(fallbackTemplate, topicPlaceholder, topic, 1)
}
