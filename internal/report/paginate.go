package report

// ChunkLimit is the per-message character budget, just under Telegram's
// 4096-character cap.
const ChunkLimit = 4000

// Paginate splits text into chunks of at most limit characters for
// transports with a message-size cap. Chunks break on the last newline
// inside the window when one exists, so lines stay whole. The first chunk
// replaces or edits the original message; the rest go out as follow-ups.
func Paginate(text string, limit int) []string {
	if limit <= 0 {
		limit = ChunkLimit
	}

	runes := []rune(text)
	if len(runes) <= limit {
		return []string{text}
	}

	var chunks []string
	for len(runes) > limit {
		cut := limit
		for i := limit - 1; i > 0; i-- {
			if runes[i] == '\n' {
				cut = i
				break
			}
		}
		chunks = append(chunks, string(runes[:cut]))
		runes = runes[cut:]
		if len(runes) > 0 && runes[0] == '\n' {
			runes = runes[1:]
		}
	}
	if len(runes) > 0 {
		chunks = append(chunks, string(runes))
	}
	return chunks
}
