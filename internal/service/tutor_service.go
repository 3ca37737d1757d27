package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/educafacil/educafacil-api/internal/models"
	"github.com/educafacil/educafacil-api/pkg/config"
)

// Fallback texts returned when the collaborator is unreachable or answers
// with something unusable. The platform degrades, it never errors out.
const (
	fallbackTutorHelp       = "Ocorreu um erro ao consultar o professor virtual. Tente novamente."
	fallbackTutorEmpty      = "Desculpe, não consegui processar sua dúvida agora."
	fallbackGradeFeedback   = "Erro na correção automática."
	fallbackLessonContent   = "Erro ao gerar conteúdo."
	fallbackRecommendations = "Não foi possível carregar recomendações."
	emptyRecommendations    = "Sem recomendações no momento."
	fallbackGapsAnalysis    = "Análise indisponível."
	fallbackStudyModels     = "Erro ao conectar com o tutor IA para gerar modelos."
)

// TutorObserver receives collaborator call telemetry.
type TutorObserver interface {
	ObserveTutorCall(operation string, ok bool)
}

// TutorService talks to the remote generative-language collaborator. Its
// behaviour is opaque from the core's perspective: every operation returns a
// usable value even when the remote side fails or times out.
type TutorService struct {
	cfg      config.TutorConfig
	client   *http.Client
	logger   *zap.Logger
	observer TutorObserver
}

// NewTutorService constructs a TutorService.
func NewTutorService(cfg config.TutorConfig, logger *zap.Logger) *TutorService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TutorService{
		cfg:    cfg,
		client: &http.Client{Timeout: cfg.Timeout},
		logger: logger,
	}
}

// SetObserver attaches call telemetry. Nil disables observation.
func (s *TutorService) SetObserver(o TutorObserver) {
	s.observer = o
}

// TutorHelp answers a student question in grade/subject context.
func (s *TutorService) TutorHelp(ctx context.Context, req models.TutorHelpRequest) string {
	system := fmt.Sprintf(`Você é um professor particular amigável e encorajador para um aluno do %s.
A matéria é %s.
Sua resposta deve ser didática, adequada à idade da criança e usar emojis para tornar o aprendizado divertido.
Se o aluno tiver dificuldades, ofereça exemplos práticos.
Responda em português do Brasil.`, req.Grade, req.Subject)

	prompt := fmt.Sprintf("Contexto: %s\n\nPergunta do aluno: %s", req.Context, req.Question)

	text, err := s.generate(ctx, "tutor_help", prompt, system, false)
	if err != nil {
		s.logger.Warn("tutor help failed", zap.Error(err))
		return fallbackTutorHelp
	}
	if text == "" {
		return fallbackTutorEmpty
	}
	return text
}

// AutoGradeAnswer grades one answer 0-100 with short feedback. Any failure
// degrades to a zero score.
func (s *TutorService) AutoGradeAnswer(ctx context.Context, question, answer string, grade models.SchoolGrade) models.AutoGradeResult {
	prompt := fmt.Sprintf(`Aja como um professor corrigindo uma prova de um aluno do %s.
Pergunta: %q
Resposta do Aluno: %q

Avalie a resposta de 0 a 100 baseando-se na precisão e clareza.
Forneça um feedback construtivo curto (máximo 2 frases).
Retorne APENAS JSON com os campos "grade" e "feedback".`, grade, question, answer)

	text, err := s.generate(ctx, "auto_grade", prompt, "", true)
	if err != nil {
		s.logger.Warn("auto grading failed", zap.Error(err))
		return models.AutoGradeResult{Grade: 0, Feedback: fallbackGradeFeedback}
	}

	var result models.AutoGradeResult
	if err := json.Unmarshal([]byte(text), &result); err != nil {
		s.logger.Warn("auto grading returned malformed payload", zap.Error(err))
		return models.AutoGradeResult{Grade: 0, Feedback: fallbackGradeFeedback}
	}
	if result.Grade < 0 {
		result.Grade = 0
	}
	if result.Grade > 100 {
		result.Grade = 100
	}
	return result
}

// GenerateLessonContent produces an introductory lesson summary for teachers.
func (s *TutorService) GenerateLessonContent(ctx context.Context, req models.LessonContentRequest) string {
	prompt := fmt.Sprintf("Crie um resumo de aula introdutório sobre %q para alunos do %s na matéria de %s. Inclua 3 pontos principais e uma curiosidade. Use formatação Markdown.",
		req.Topic, req.Grade, req.Subject)

	text, err := s.generate(ctx, "lesson_content", prompt, "", false)
	if err != nil {
		s.logger.Warn("lesson content generation failed", zap.Error(err))
		return fallbackLessonContent
	}
	return text
}

// AdaptiveRecommendations suggests study activities matching a learning
// style.
func (s *TutorService) AdaptiveRecommendations(ctx context.Context, req models.RecommendationsRequest) string {
	prompt := fmt.Sprintf(`Sugira 3 atividades ou tipos de conteúdo para um aluno do %s estudar %s. O aluno tem estilo de aprendizado %s.
Para visual: sugira diagramas, vídeos, mapas mentais.
Para auditivo: podcasts, explicar em voz alta.
Para cinestésico: experimentos, montar coisas.
Formate como uma lista markdown curta.`, req.Grade, req.Subject, req.Style)

	text, err := s.generate(ctx, "recommendations", prompt, "", false)
	if err != nil {
		s.logger.Warn("recommendations failed", zap.Error(err))
		return fallbackRecommendations
	}
	if text == "" {
		return emptyRecommendations
	}
	return text
}

// AnalyzePerformanceGaps looks for knowledge gaps in recent scores.
func (s *TutorService) AnalyzePerformanceGaps(ctx context.Context, req models.PerformanceGapsRequest) string {
	sum := 0
	parts := make([]string, len(req.Scores))
	for i, score := range req.Scores {
		sum += score
		parts[i] = fmt.Sprintf("%d", score)
	}
	average := 0.0
	if len(req.Scores) > 0 {
		average = float64(sum) / float64(len(req.Scores))
	}

	prompt := fmt.Sprintf(`Analise o desempenho de um aluno em %s. Notas recentes: [%s]. Média: %.1f.
Identifique potenciais lacunas e sugira uma estratégia de recuperação em 2 frases.`,
		req.Subject, strings.Join(parts, ", "), average)

	text, err := s.generate(ctx, "performance_gaps", prompt, "", false)
	if err != nil {
		s.logger.Warn("performance analysis failed", zap.Error(err))
		return fallbackGapsAnalysis
	}
	return text
}

// GenerateStudyModels produces three alternative study plans for a topic.
func (s *TutorService) GenerateStudyModels(ctx context.Context, req models.StudyModelsRequest) string {
	prompt := fmt.Sprintf(`Atue como um especialista em educação. Para um aluno do %s estudando %s, crie 3 modelos de estudo diferentes e criativos para o tópico %q.
Estruture a resposta com um modelo por seção, cada um com nome da estratégia e uma descrição curta de como fazer.
Seja didático, direto e use uma linguagem motivadora para o aluno.`, req.Grade, req.Subject, req.Topic)

	text, err := s.generate(ctx, "study_models", prompt, "", false)
	if err != nil {
		s.logger.Warn("study models generation failed", zap.Error(err))
		return fallbackStudyModels
	}
	return text
}

// Wire types of the generative-language REST contract.

type generateRequest struct {
	Contents          []content         `json:"contents"`
	SystemInstruction *content          `json:"systemInstruction,omitempty"`
	GenerationConfig  *generationConfig `json:"generationConfig,omitempty"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generationConfig struct {
	Temperature      float64 `json:"temperature,omitempty"`
	ResponseMIMEType string  `json:"responseMimeType,omitempty"`
}

type generateResponse struct {
	Candidates []struct {
		Content content `json:"content"`
	} `json:"candidates"`
}

func (s *TutorService) generate(ctx context.Context, operation, prompt, system string, wantJSON bool) (text string, err error) {
	defer func() {
		if s.observer != nil {
			s.observer.ObserveTutorCall(operation, err == nil)
		}
	}()

	if !s.cfg.Enabled {
		return "", fmt.Errorf("tutor collaborator disabled")
	}

	reqBody := generateRequest{
		Contents: []content{{Parts: []part{{Text: prompt}}}},
	}
	if system != "" {
		reqBody.SystemInstruction = &content{Parts: []part{{Text: system}}}
		reqBody.GenerationConfig = &generationConfig{Temperature: 0.7}
	}
	if wantJSON {
		reqBody.GenerationConfig = &generationConfig{ResponseMIMEType: "application/json"}
	}

	payload, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("encode tutor request: %w", err)
	}

	url := fmt.Sprintf("%s/v1beta/models/%s:generateContent",
		strings.TrimRight(s.cfg.BaseURL, "/"), s.cfg.Model)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("build tutor request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	if s.cfg.APIKey != "" {
		httpReq.Header.Set("x-goog-api-key", s.cfg.APIKey)
	}

	resp, err := s.client.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("call tutor collaborator: %w", err)
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("tutor collaborator returned %d", resp.StatusCode)
	}

	var decoded generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return "", fmt.Errorf("decode tutor response: %w", err)
	}
	if len(decoded.Candidates) == 0 || len(decoded.Candidates[0].Content.Parts) == 0 {
		return "", nil
	}
	return strings.TrimSpace(decoded.Candidates[0].Content.Parts[0].Text), nil
}
