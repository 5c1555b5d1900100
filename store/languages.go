package store

// SupportedLanguages is the reference table seeded at first startup.
// Voice support tracks the languages the speech engines handle well;
// camera support tracks the OCR engine's script coverage.
func SupportedLanguages() []Language {
	return []Language{
		{Code: "af", Name: "Afrikaans", NativeName: "Afrikaans", SupportsText: true, SupportsCamera: true},
		{Code: "ar", Name: "Arabic", NativeName: "العربية", SupportsText: true, SupportsCamera: true},
		{Code: "bg", Name: "Bulgarian", NativeName: "Български", SupportsText: true, SupportsCamera: true},
		{Code: "bn", Name: "Bengali", NativeName: "বাংলা", SupportsText: true, SupportsCamera: true},
		{Code: "ca", Name: "Catalan", NativeName: "Català", SupportsText: true, SupportsCamera: true},
		{Code: "zh", Name: "Chinese", NativeName: "中文", SupportsText: true, SupportsVoice: true, SupportsCamera: true},
		{Code: "zh-CN", Name: "Chinese (Simplified)", NativeName: "简体中文", SupportsText: true, SupportsCamera: true},
		{Code: "zh-TW", Name: "Chinese (Traditional)", NativeName: "繁體中文", SupportsText: true, SupportsCamera: true},
		{Code: "hr", Name: "Croatian", NativeName: "Hrvatski", SupportsText: true, SupportsCamera: true},
		{Code: "cs", Name: "Czech", NativeName: "Čeština", SupportsText: true, SupportsCamera: true},
		{Code: "da", Name: "Danish", NativeName: "Dansk", SupportsText: true, SupportsCamera: true},
		{Code: "nl", Name: "Dutch", NativeName: "Nederlands", SupportsText: true, SupportsCamera: true},
		{Code: "en", Name: "English", NativeName: "English", SupportsText: true, SupportsVoice: true, SupportsCamera: true},
		{Code: "et", Name: "Estonian", NativeName: "Eesti", SupportsText: true, SupportsCamera: true},
		{Code: "fi", Name: "Finnish", NativeName: "Suomi", SupportsText: true, SupportsCamera: true},
		{Code: "fr", Name: "French", NativeName: "Français", SupportsText: true, SupportsVoice: true, SupportsCamera: true},
		{Code: "gl", Name: "Galician", NativeName: "Galego", SupportsText: true, SupportsCamera: true},
		{Code: "ka", Name: "Georgian", NativeName: "ქართული", SupportsText: true, SupportsCamera: true},
		{Code: "de", Name: "German", NativeName: "Deutsch", SupportsText: true, SupportsVoice: true, SupportsCamera: true},
		{Code: "el", Name: "Greek", NativeName: "Ελληνικά", SupportsText: true, SupportsCamera: true},
		{Code: "gu", Name: "Gujarati", NativeName: "ગુજરાતી", SupportsText: true, SupportsCamera: true},
		{Code: "ht", Name: "Haitian Creole", NativeName: "Kreyòl Ayisyen", SupportsText: true, SupportsCamera: true},
		{Code: "he", Name: "Hebrew", NativeName: "עברית", SupportsText: true, SupportsCamera: true},
		{Code: "hi", Name: "Hindi", NativeName: "हिन्दी", SupportsText: true, SupportsCamera: true},
		{Code: "hu", Name: "Hungarian", NativeName: "Magyar", SupportsText: true, SupportsCamera: true},
		{Code: "is", Name: "Icelandic", NativeName: "Íslenska", SupportsText: true, SupportsCamera: true},
		{Code: "id", Name: "Indonesian", NativeName: "Bahasa Indonesia", SupportsText: true, SupportsCamera: true},
		{Code: "ga", Name: "Irish", NativeName: "Gaeilge", SupportsText: true, SupportsCamera: true},
		{Code: "it", Name: "Italian", NativeName: "Italiano", SupportsText: true, SupportsVoice: true, SupportsCamera: true},
		{Code: "ja", Name: "Japanese", NativeName: "日本語", SupportsText: true, SupportsVoice: true, SupportsCamera: true},
		{Code: "kn", Name: "Kannada", NativeName: "ಕನ್ನಡ", SupportsText: true, SupportsCamera: true},
		{Code: "ko", Name: "Korean", NativeName: "한국어", SupportsText: true, SupportsVoice: true, SupportsCamera: true},
		{Code: "lv", Name: "Latvian", NativeName: "Latviešu", SupportsText: true, SupportsCamera: true},
		{Code: "lt", Name: "Lithuanian", NativeName: "Lietuvių", SupportsText: true, SupportsCamera: true},
		{Code: "mk", Name: "Macedonian", NativeName: "Македонски", SupportsText: true, SupportsCamera: true},
		{Code: "ms", Name: "Malay", NativeName: "Bahasa Melayu", SupportsText: true, SupportsCamera: true},
		{Code: "ml", Name: "Malayalam", NativeName: "മലയാളം", SupportsText: true, SupportsCamera: true},
		{Code: "mt", Name: "Maltese", NativeName: "Malti", SupportsText: true, SupportsCamera: true},
		{Code: "mr", Name: "Marathi", NativeName: "मराठी", SupportsText: true, SupportsCamera: true},
		{Code: "no", Name: "Norwegian", NativeName: "Norsk", SupportsText: true, SupportsCamera: true},
		{Code: "fa", Name: "Persian", NativeName: "فارسی", SupportsText: true, SupportsCamera: true},
		{Code: "pl", Name: "Polish", NativeName: "Polski", SupportsText: true, SupportsCamera: true},
		{Code: "pt", Name: "Portuguese", NativeName: "Português", SupportsText: true, SupportsCamera: true},
		{Code: "pa", Name: "Punjabi", NativeName: "ਪੰਜਾਬੀ", SupportsText: true, SupportsCamera: true},
		{Code: "ro", Name: "Romanian", NativeName: "Română", SupportsText: true, SupportsCamera: true},
		{Code: "ru", Name: "Russian", NativeName: "Русский", SupportsText: true, SupportsCamera: true},
		{Code: "sr", Name: "Serbian", NativeName: "Српски", SupportsText: true, SupportsCamera: true},
		{Code: "sk", Name: "Slovak", NativeName: "Slovenčina", SupportsText: true, SupportsCamera: true},
		{Code: "sl", Name: "Slovenian", NativeName: "Slovenščina", SupportsText: true, SupportsCamera: true},
		{Code: "es", Name: "Spanish", NativeName: "Español", SupportsText: true, SupportsVoice: true, SupportsCamera: true},
		{Code: "sw", Name: "Swahili", NativeName: "Kiswahili", SupportsText: true, SupportsCamera: true},
		{Code: "sv", Name: "Swedish", NativeName: "Svenska", SupportsText: true, SupportsCamera: true},
		{Code: "ta", Name: "Tamil", NativeName: "தமிழ்", SupportsText: true, SupportsCamera: true},
		{Code: "te", Name: "Telugu", NativeName: "తెలుగు", SupportsText: true, SupportsCamera: true},
		{Code: "th", Name: "Thai", NativeName: "ไทย", SupportsText: true, SupportsCamera: true},
		{Code: "tr", Name: "Turkish", NativeName: "Türkçe", SupportsText: true, SupportsCamera: true},
		{Code: "uk", Name: "Ukrainian", NativeName: "Українська", SupportsText: true, SupportsCamera: true},
		{Code: "ur", Name: "Urdu", NativeName: "اردو", SupportsText: true, SupportsCamera: true},
		{Code: "vi", Name: "Vietnamese", NativeName: "Tiếng Việt", SupportsText: true, SupportsVoice: true, SupportsCamera: true},
		{Code: "cy", Name: "Welsh", NativeName: "Cymraeg", SupportsText: true, SupportsCamera: true},
	}
}
