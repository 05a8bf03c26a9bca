package guard

// Estimate predicts the serialized size of a response with the given shape.
// The chain is raw array bytes → JSON bytes → tokens; each step uses floor
// arithmetic and deliberately conservative constants so the guard over-,
// never under-, estimates.
func (g *Guard) Estimate(shape GridShape) SizeEstimate {
	return g.estimate(shape, true)
}

func (g *Guard) estimate(shape GridShape, includeMetadata bool) SizeEstimate {
	cfg := g.cfg

	rawBytes := shape.Elements() * cfg.BytesPerElement

	// JSON formatting of numeric arrays inflates the payload: field names,
	// separators, decimal rendering.
	jsonBytes := int(float64(rawBytes) * cfg.JSONOverheadMultiplier)
	if includeMetadata {
		jsonBytes += cfg.MetadataOverheadBytes
	}

	// Numeric output is almost entirely ASCII, so bytes ≈ characters.
	tokens := jsonBytes / cfg.CharsPerToken

	return SizeEstimate{
		RawBytes:        rawBytes,
		JSONBytes:       jsonBytes,
		EstimatedTokens: tokens,
	}
}
