package summary

import (
	"fmt"
	"strings"
)

const systemBasic = "You are a professional content analyst who creates short, well-structured summaries. " +
	"Focus on the essential themes and takeaways while staying brief and clear."

const systemDetailed = "You are a professional content analyst who creates detailed, well-structured summaries. " +
	"Focus on capturing specific details, references, and actionable information while maintaining clarity and conciseness."

const systemTechnical = "You are a professional technical analyst who creates precise, implementation-focused summaries. " +
	"Capture exact terminology, specifications, versions, commands, and procedures while maintaining clarity."

const templateBasic = `Create a short Markdown summary of this transcript with two sections:

## Main Topics
- List the key themes discussed (2-4 bullet points)

## Key Points
- Break down the most important points (3-5 bullet points)
- Keep each point short and self-contained

Transcript:
%s`

const templateDetailed = `Create a detailed Markdown summary of this transcript. Pay special attention to specific references (e.g., forms, tools, software, numbers) while maintaining clear and concise bullet points.

## Main Topics
- List the key themes discussed (2-4 bullet points)
- Focus on the core problems or concepts addressed

## Key Details
- List all specific references mentioned:
  * Forms, documents, or official procedures
  * Tools, software, or platforms used
  * Specific numbers, dates, or timeframes
  * Names of relevant organizations or programs

## Key Points
- Break down the most important points (4-6 bullet points)
- Include specific examples and context
- Highlight any step-by-step processes or solutions mentioned

## Important Takeaways
- List practical lessons and insights (2-5 bullet points)
- Focus on actionable advice or warnings

Transcript:
%s`

const templateTechnical = `Create a technical Markdown summary of this transcript, focused on implementation and specification detail.

## Overview
- State the technical subject and its scope (1-2 bullet points)

## Technical Details
- List exact names: tools, libraries, commands, versions, APIs, file formats
- Capture configuration values, parameters, and numeric limits verbatim
- Record step-by-step procedures in order

## Implementation Notes
- Describe how the pieces fit together
- Include caveats, edge cases, and compatibility constraints mentioned

## References
- List any specifications, documents, or external resources cited

Transcript:
%s`

const templateReduce = `Based on the following collection of key points from different parts of the transcript,
create a cohesive final summary that captures all specific details while maintaining clarity:

## Main Topics
- List the key themes discussed (2-4 bullet points)
- Focus on the core problems or concepts addressed

## Key Details
- List all specific references mentioned:
  * Forms, documents, or official procedures
  * Tools, software, or platforms used
  * Specific numbers, dates, or timeframes
  * Names of relevant organizations or programs

## Key Points
- Break down the most important points (4-6 bullet points)
- Include specific examples and context
- Highlight any step-by-step processes or solutions mentioned

## Important Takeaways
- List practical lessons and insights (2-4 bullet points)
- Focus on actionable advice or warnings

## Notable Quotes
- Include significant quotes that provide advice, explain key concepts, or share experiences
- Always attribute quotes to speakers when the source names them

Key points from transcript:
%s`

var chunkTemplates = map[Depth]string{
	DepthBasic:     templateBasic,
	DepthDetailed:  templateDetailed,
	DepthTechnical: templateTechnical,
}

var systemInstructions = map[Depth]string{
	DepthBasic:     systemBasic,
	DepthDetailed:  systemDetailed,
	DepthTechnical: systemTechnical,
}

// SystemInstruction returns the fixed system prompt for a depth.
func SystemInstruction(depth Depth) string {
	return systemInstructions[depth]
}

// ChunkPrompt builds the generation prompt for one chunk. When the
// transcript spans multiple chunks the template is prefixed with the
// chunk's position in the source so partial summaries keep their place.
func ChunkPrompt(depth Depth, chunkText string, chunkIndex, totalChunks int) string {
	prompt := fmt.Sprintf(chunkTemplates[depth], chunkText)
	if totalChunks <= 1 {
		return prompt
	}

	position := "middle of"
	switch {
	case chunkIndex == 0:
		position = "beginning of"
	case chunkIndex == totalChunks-1:
		position = "end of"
	}

	return fmt.Sprintf("This is part %d of %d (the %s the transcript).\n\n%s",
		chunkIndex+1, totalChunks, position, prompt)
}

// ReducePrompt builds the second-pass prompt that combines all chunk
// summaries into one final summary. The template is fixed across depths;
// the depth still shapes the reduce call through its system instruction.
func ReducePrompt(chunkSummaries []string) string {
	combined := strings.Join(chunkSummaries, "\n\n")
	return fmt.Sprintf(templateReduce, combined)
}
