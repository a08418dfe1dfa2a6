package model

// Status messages shown under the form
const (
	MsgSelectFile = "⚠️ Please select a file first!"
	MsgEnterText  = "⚠️ Please enter some text first!"

	MsgFileTranslated = "✅ File successfully translated!"
	MsgTextTranslated = "✅ Text successfully translated!"

	MsgUploadFailed      = "❌ Upload failed. Try again."
	MsgTranslationFailed = "❌ Translation failed. Try again."
)

func successMessage(m InputMode) string {
	if m == ModeText {
		return MsgTextTranslated
	}
	return MsgFileTranslated
}

func failureMessage(m InputMode) string {
	if m == ModeText {
		return MsgTranslationFailed
	}
	return MsgUploadFailed
}
