package analysis

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"golang.org/x/sync/errgroup"
)

const (
	directChatTimeout     = 30 * time.Second
	directChatTemperature = 0.2
	clauseWorkers         = 4
)

// languagePrompts carries the per-language instruction set. Languages
// without an entry use the English prompts.
type languagePrompts struct {
	summarize string
	clauses   string
	qa        string
	compare   string
}

var prompts = map[string]languagePrompts{
	"en": {
		summarize: "Analyze this legal document and provide a clear, easy-to-understand summary in English.",
		clauses:   "Analyze this legal clause and provide an explanation in English. Mark 🟢 Safe / 🟡 Caution / 🔴 Risky and explain why.",
		qa:        "Given this legal document excerpt, answer the question clearly in English. If unsure, say 'Consult a lawyer.'",
		compare:   "Compare these two versions of a legal clause and explain in English what changed and its impact. Mark 🟢 Safe / 🟡 Caution / 🔴 Risky.",
	},
	"hi": {
		summarize: "इस कानूनी दस्तावेज़ का विश्लेषण करें और हिंदी में एक स्पष्ट, समझने में आसान सारांश प्रदान करें।",
		clauses:   "इस कानूनी धारा का विश्लेषण करें और हिंदी में व्याख्या प्रदान करें। 🟢 सुरक्षित / 🟡 सावधानी / 🔴 जोखिम भरा चिह्नित करें और क्यों समझाएं।",
		qa:        "इस कानूनी दस्तावेज़ अंश को देखते हुए, प्रश्न का स्पष्ट उत्तर हिंदी में दें। यदि अनिश्चित हैं, तो 'वकील से सलाह लें' कहें।",
		compare:   "इन दो कानूनी धाराओं की तुलना करें और हिंदी में बताएं कि क्या बदला और उसका प्रभाव क्या है। 🟢 सुरक्षित / 🟡 सावधानी / 🔴 जोखिम भरा चिह्नित करें।",
	},
	"mr": {
		summarize: "या कायदेशीर दस्तावेजाचे विश्लेषण करा आणि मराठीत स्पष्ट, समजण्यास सोपे सारांश द्या.",
		clauses:   "या कायदेशीर कलमाचे विश्लेषण करा आणि मराठीत स्पष्टीकरण द्या. 🟢 सुरक्षित / 🟡 सावधानता / 🔴 धोकादायक चिन्हांकित करा आणि का हे स्पष्ट करा.",
		qa:        "या कायदेशीर दस्तावेज अंशाच्या आधारे, प्रश्नाचे स्पष्ट उत्तर मराठीत द्या. अनिश्चित असल्यास 'वकीलांचा सल्ला घ्या' असे सांगा.",
		compare:   "या दोन कायदेशीर कलमांची तुलना करा आणि मराठीत काय बदलले व त्याचा परिणाम काय हे स्पष्ट करा. 🟢 सुरक्षित / 🟡 सावधानता / 🔴 धोकादायक चिन्हांकित करा.",
	},
}

func promptsFor(language string) languagePrompts {
	if p, ok := prompts[language]; ok {
		return p
	}
	return prompts["en"]
}

type storedDocument struct {
	text             string
	detectedLanguage string
	fileType         string
}

// DirectService implements Service in-process against the OpenAI API, with
// an in-memory document store. It exists for development and offline use;
// with an empty API key it runs in mock mode and returns canned responses.
type DirectService struct {
	mu   sync.RWMutex
	docs map[string]storedDocument

	client *openai.Client
	model  openai.ChatModel
	log    *slog.Logger
}

// NewDirect builds a direct provider. An empty apiKey selects mock mode.
func NewDirect(apiKey string, model openai.ChatModel, log *slog.Logger) *DirectService {
	s := &DirectService{
		docs:  make(map[string]storedDocument),
		model: model,
		log:   log,
	}
	if s.model == "" {
		s.model = openai.ChatModelGPT4oMini
	}
	if apiKey != "" {
		cli := openai.NewClient(option.WithAPIKey(apiKey))
		s.client = &cli
	} else {
		log.Warn("no API key configured; analysis runs in mock mode")
	}
	return s
}

func (s *DirectService) Upload(ctx context.Context, filename string, content []byte) (UploadResult, error) {
	text, err := ExtractText(filename, content)
	if err != nil {
		return UploadResult{}, &RemoteError{StatusCode: 500, Detail: err.Error()}
	}
	if text == "" {
		return UploadResult{}, &RemoteError{StatusCode: 400, Detail: "no extractable text found in the document"}
	}

	docID := uuid.New().String()
	detected := DetectLanguage(text)
	fileType := strings.TrimPrefix(strings.ToLower(filepath.Ext(filename)), ".")

	s.mu.Lock()
	s.docs[docID] = storedDocument{text: text, detectedLanguage: detected, fileType: fileType}
	s.mu.Unlock()

	s.log.Info("document stored", "document_id", docID, "text_length", len(text), "detected_language", detected)
	return UploadResult{
		DocID:            docID,
		TextLength:       len(text),
		FileType:         fileType,
		DetectedLanguage: detected,
	}, nil
}

func (s *DirectService) Summarize(ctx context.Context, docID, language string) (SummarizeResult, error) {
	doc, err := s.document(docID)
	if err != nil {
		return SummarizeResult{}, err
	}
	prompt := fmt.Sprintf("%s\n\n%s", promptsFor(language).summarize, doc.text)
	summary, err := s.generate(ctx, prompt, "summarize")
	if err != nil {
		return SummarizeResult{}, err
	}
	return SummarizeResult{Summary: summary, DetectedLanguage: doc.detectedLanguage}, nil
}

func (s *DirectService) AnalyzeClauses(ctx context.Context, docID, language string) ([]ClauseAnalysis, error) {
	doc, err := s.document(docID)
	if err != nil {
		return nil, err
	}

	chunks := SplitClauses(doc.text, 0)
	results := make([]ClauseAnalysis, len(chunks))
	basePrompt := promptsFor(language).clauses

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(clauseWorkers)
	for i, clause := range chunks {
		g.Go(func() error {
			prompt := fmt.Sprintf("%s\n\nClause:\n%s", basePrompt, clause)
			explanation, err := s.generate(gctx, prompt, "clauses")
			if err != nil {
				return err
			}
			// Index preserves the clause's position in the source document
			results[i] = ClauseAnalysis{Clause: clause, Analysis: explanation}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func (s *DirectService) AnswerQuestion(ctx context.Context, docID, question, language string) (string, error) {
	doc, err := s.document(docID)
	if err != nil {
		return "", err
	}
	contextText := RetrieveContext(doc.text, question, 0)
	prompt := fmt.Sprintf("%s\n\nExcerpt:\n%s\n\nQuestion: %s\nAnswer:", promptsFor(language).qa, contextText, question)
	return s.generate(ctx, prompt, "qa")
}

func (s *DirectService) CompareDocuments(ctx context.Context, docIDA, docIDB, language string) ([]ComparisonRecord, error) {
	docA, err := s.document(docIDA)
	if err != nil {
		return nil, err
	}
	docB, err := s.document(docIDB)
	if err != nil {
		return nil, err
	}

	clausesA := SplitClauses(docA.text, 0)
	clausesB := SplitClauses(docB.text, 0)
	n := len(clausesA)
	if len(clausesB) > n {
		n = len(clausesB)
	}

	records := make([]ComparisonRecord, n)
	basePrompt := promptsFor(language).compare

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(clauseWorkers)
	for i := 0; i < n; i++ {
		textA := clauseAt(clausesA, i)
		textB := clauseAt(clausesB, i)
		g.Go(func() error {
			prompt := fmt.Sprintf("%s\n\nVersion A:\n%s\n\nVersion B:\n%s", basePrompt, textA, textB)
			summary, err := s.generate(gctx, prompt, "compare")
			if err != nil {
				return err
			}
			records[i] = ComparisonRecord{
				Index:     i,
				TextA:     textA,
				TextB:     textB,
				RiskLevel: riskFromMarkers(summary),
				Summary:   summary,
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return records, nil
}

func (s *DirectService) Status(_ context.Context) (Status, error) {
	return Status{
		Service:      "LegalEase AI",
		Mock:         s.client == nil,
		Model:        string(s.model),
		ImageSupport: false,
	}, nil
}

func (s *DirectService) document(docID string) (storedDocument, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	doc, ok := s.docs[docID]
	if !ok {
		return storedDocument{}, fmt.Errorf("%w: %s", ErrDocumentNotFound, docID)
	}
	return doc, nil
}

func clauseAt(clauses []string, i int) string {
	if i < len(clauses) {
		return clauses[i]
	}
	return ""
}

// riskFromMarkers maps the 🟢/🟡/🔴 markers the prompts ask for to a level.
func riskFromMarkers(text string) string {
	switch {
	case strings.Contains(text, "🔴"):
		return "risky"
	case strings.Contains(text, "🟡"):
		return "caution"
	case strings.Contains(text, "🟢"):
		return "safe"
	default:
		return ""
	}
}

func (s *DirectService) generate(ctx context.Context, prompt, operation string) (string, error) {
	if s.client == nil {
		return mockResponse(operation), nil
	}

	reqCtx, cancel := context.WithTimeout(ctx, directChatTimeout)
	defer cancel()

	resp, err := s.client.Chat.Completions.New(reqCtx, openai.ChatCompletionNewParams{
		Model: s.model,
		Messages: []openai.ChatCompletionMessageParamUnion{
			{
				OfUser: &openai.ChatCompletionUserMessageParam{
					Content: openai.ChatCompletionUserMessageParamContentUnion{
						OfString: openai.String(prompt),
					},
				},
			},
		},
		Temperature: openai.Float(directChatTemperature),
	})
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		return "", fmt.Errorf("openai: no choices returned")
	}
	return resp.Choices[0].Message.Content, nil
}

func mockResponse(operation string) string {
	switch operation {
	case "summarize":
		return "One-liner: This document outlines the agreement between parties for services rendered.\n" +
			"- Parties agree on scope, payment, and timelines.\n" +
			"- Liability is limited; confidentiality applies.\n" +
			"- Termination and dispute resolution are specified."
	case "clauses":
		return "🟡 Caution — Key obligations apply; ensure timelines and liability are acceptable."
	case "qa":
		return "The clause sets expectations and limits liability. Consult a lawyer for specifics."
	case "compare":
		return "🟡 Caution — The revised clause shifts obligations between the parties; review the changed terms."
	default:
		return "Prototype response."
	}
}
