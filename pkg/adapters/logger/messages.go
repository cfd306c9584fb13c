package logger

import "github.com/ideamans/go-l10n"

func init() {
	l10n.Register("ja", l10n.LexiconMap{
		// Orchestration level messages (info)
		"Encoding %s with %s algorithm...": "%s を %s アルゴリズムで圧縮中...",
		"Decoding %s...":                   "%s を展開中...",
		"Output saved to %s":               "出力を %s に保存しました",
		"Interrupted, shutting down...":    "中断されました。シャットダウン中...",

		// Source / probe
		"Opened input: %dx%d at %.2f fps": "入力を開きました: %dx%d, %.2f fps",
		"Probed %d frames (%d ms)":        "%d フレームを検出しました (%d ms)",

		// Encode stage
		"Created codec %q with quality %d":  "コーデック %q を品質 %d で作成しました",
		"Compressed %d frames":              "%d フレームを圧縮しました",
		"Average compression ratio: %.2f:1": "平均圧縮率: %.2f:1",

		// Decode stage
		"Decompressed %d frames":     "%d フレームを展開しました",
		"Reconstructed video: %dx%d": "動画を再構築しました: %dx%d",

		// Audio passthrough
		"Extracting audio track":        "音声トラックを抽出中",
		"Muxing audio back into output": "音声を出力に多重化中",
		"No audio track, continuing without audio": "音声トラックがないため音声なしで続行します",

		// Errors
		"Failed to open input: %s":       "入力を開けませんでした: %s",
		"Failed to compress frame: %s":   "フレームの圧縮に失敗しました: %s",
		"Failed to decompress frame: %s": "フレームの展開に失敗しました: %s",
		"Failed to write output: %s":     "出力の書き込みに失敗しました: %s",
	})
}
