package i18n

// Catalog maps a translation key to a template string. Templates may contain
// named placeholders of the form {name}.
type Catalog map[string]string

// BaselineLanguage is the fallback for keys missing from other catalogs and
// the language used when no valid selection is stored.
const BaselineLanguage = "en"

// Language describes one supported language selection.
type Language struct {
	Code string
	Name string
}

// SupportedLanguages is the closed set of selectable languages.
var SupportedLanguages = []Language{
	{Code: "en", Name: "English"},
	{Code: "hi", Name: "हिन्दी"},
	{Code: "mr", Name: "मराठी"},
}

// rtlLanguages is the fixed membership table for right-to-left scripts.
// Direction is derived from the language code, never set independently.
var rtlLanguages = map[string]bool{
	"ar": true,
	"he": true,
}

var catalogs = map[string]Catalog{
	"en": {
		"nav.legalEase": "LegalEase AI",
		"nav.summary":   "Summary",
		"nav.clauses":   "Clauses",
		"nav.chat":      "Chat",
		"nav.compare":   "Compare",

		"upload.button":      "Choose Document",
		"upload.uploading":   "Uploading…",
		"upload.success":     "Uploaded successfully",
		"upload.error":       "Failed to upload document",
		"upload.remove":      "Remove document",
		"upload.removed":     "Removed document",
		"upload.unsupported": "Unsupported file format. Supported formats: {formats}",

		"summary.title":      "Summary",
		"summary.generate":   "Generate Summary",
		"summary.generating": "Summarizing…",
		"summary.noSummary":  "No summary yet.",
		"summary.analysisIn": "Analysis in {language}",

		"clauses.title":     "Clauses",
		"clauses.analyze":   "Analyze Clauses",
		"clauses.analyzing": "Analyzing…",
		"clauses.noClauses": "No clause analysis yet.",
		"clauses.safe":      "Safe",
		"clauses.caution":   "Caution",
		"clauses.risky":     "Risky",

		"chat.title":       "Chat",
		"chat.placeholder": "Ask a question about your document...",
		"chat.send":        "Send",
		"chat.sending":     "Sending…",
		"chat.noMessages":  "No messages yet.",
		"chat.error":       "Failed to answer",

		"compare.title":     "Compare",
		"compare.comparing": "Comparing…",
		"compare.noResult":  "No comparison yet.",
		"compare.needTwo":   "Upload a second document to compare",

		"common.uploadFirst": "Upload a document first",
		"common.error":       "An error occurred",
		"common.notFound":    "Document no longer available, please upload it again",
		"common.loading":     "Loading...",

		"footer.disclaimer": "⚠️ Not legal advice. This tool is a prototype for educational purposes.",

		"language.selector": "Language",
	},

	"hi": {
		"nav.legalEase": "LegalEase AI",
		"nav.summary":   "सारांश",
		"nav.clauses":   "धाराएं",
		"nav.chat":      "चैट",
		"nav.compare":   "तुलना",

		"upload.button":      "दस्तावेज़ चुनें",
		"upload.uploading":   "अपलोड हो रहा है…",
		"upload.success":     "सफलतापूर्वक अपलोड किया गया",
		"upload.error":       "दस्तावेज़ अपलोड करने में विफल",
		"upload.remove":      "दस्तावेज़ हटाएं",
		"upload.removed":     "दस्तावेज़ हटा दिया गया",
		"upload.unsupported": "असमर्थित फ़ाइल प्रारूप। समर्थित प्रारूप: {formats}",

		"summary.title":      "सारांश",
		"summary.generate":   "सारांश जेनरेट करें",
		"summary.generating": "जेनरेट हो रहा है…",
		"summary.noSummary":  "अभी तक कोई सारांश नहीं।",
		"summary.analysisIn": "{language} में विश्लेषण",

		"clauses.title":     "धाराएं",
		"clauses.analyze":   "धाराओं का विश्लेषण करें",
		"clauses.analyzing": "विश्लेषण हो रहा है…",
		"clauses.noClauses": "अभी तक कोई धारा विश्लेषण नहीं।",
		"clauses.safe":      "सुरक्षित",
		"clauses.caution":   "सावधानी",
		"clauses.risky":     "जोखिमपूर्ण",

		"chat.title":       "चैट",
		"chat.placeholder": "अपने दस्तावेज़ के बारे में एक प्रश्न पूछें...",
		"chat.send":        "भेजें",
		"chat.sending":     "भेजा जा रहा है…",
		"chat.noMessages":  "अभी तक कोई संदेश नहीं।",
		"chat.error":       "उत्तर देने में विफल",

		"compare.title":     "तुलना",
		"compare.comparing": "तुलना हो रही है…",
		"compare.noResult":  "अभी तक कोई तुलना नहीं।",
		"compare.needTwo":   "तुलना के लिए दूसरा दस्तावेज़ अपलोड करें",

		"common.uploadFirst": "पहले एक दस्तावेज़ अपलोड करें",
		"common.error":       "एक त्रुटि हुई",
		"common.notFound":    "दस्तावेज़ अब उपलब्ध नहीं है, कृपया इसे फिर से अपलोड करें",
		"common.loading":     "लोड हो रहा है...",

		"footer.disclaimer": "⚠️ कानूनी सलाह नहीं। यह उपकरण शैक्षिक उद्देश्यों के लिए एक प्रोटोटाइप है।",

		"language.selector": "भाषा",
	},

	"mr": {
		"nav.legalEase": "LegalEase AI",
		"nav.summary":   "सारांश",
		"nav.clauses":   "कलमे",
		"nav.chat":      "चॅट",
		"nav.compare":   "तुलना",

		"upload.button":      "दस्तावेज निवडा",
		"upload.uploading":   "अपलोड होत आहे…",
		"upload.success":     "यशस्वीरित्या अपलोड केले",
		"upload.error":       "दस्तावेज अपलोड करण्यात अयशस्वी",
		"upload.remove":      "दस्तावेज काढा",
		"upload.removed":     "दस्तावेज काढले",
		"upload.unsupported": "असमर्थित फाइल स्वरूप. समर्थित स्वरूप: {formats}",

		"summary.title":      "सारांश",
		"summary.generate":   "सारांश तयार करा",
		"summary.generating": "तयार होत आहे…",
		"summary.noSummary":  "अद्याप कोणताही सारांश नाही.",
		"summary.analysisIn": "{language} मध्ये विश्लेषण",

		"clauses.title":     "कलमे",
		"clauses.analyze":   "कलमांचे विश्लेषण करा",
		"clauses.analyzing": "विश्लेषण होत आहे…",
		"clauses.noClauses": "अद्याप कोणतेही कलम विश्लेषण नाही.",
		"clauses.safe":      "सुरक्षित",
		"clauses.caution":   "सावधानता",
		"clauses.risky":     "धोकादायक",

		"chat.title":       "चॅट",
		"chat.placeholder": "आपल्या दस्तावेजाबद्दल एक प्रश्न विचारा...",
		"chat.send":        "पाठवा",
		"chat.sending":     "पाठवत आहे…",
		"chat.noMessages":  "अद्याप कोणतेही संदेश नाहीत.",
		"chat.error":       "उत्तर देण्यात अयशस्वी",

		"compare.title":     "तुलना",
		"compare.comparing": "तुलना होत आहे…",
		"compare.noResult":  "अद्याप कोणतीही तुलना नाही.",
		"compare.needTwo":   "तुलनेसाठी दुसरा दस्तावेज अपलोड करा",

		"common.uploadFirst": "प्रथम एक दस्तावेज अपलोड करा",
		"common.error":       "एक त्रुटी आली",
		"common.notFound":    "दस्तावेज आता उपलब्ध नाही, कृपया तो पुन्हा अपलोड करा",
		"common.loading":     "लोड होत आहे...",

		"footer.disclaimer": "⚠️ कायदेशीर सल्ला नाही. हे साधन शैक्षणिक हेतूंसाठी एक प्रोटोटाइप आहे.",

		"language.selector": "भाषा",
	},
}
