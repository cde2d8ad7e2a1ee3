package pipeline

import "fmt"

// Prompt templates for the two-stage generation chain. The summarize prompt
// maps one transcript chunk to prose; the combine prompt reduces the
// chunk-summaries of one video into a single coherent narrative; the article
// prompt turns the joined per-video summaries into a JSON article; the image
// prompt illustrates the topic.

const summarizePromptTemplate = `**Role:** you are a helpful AI assistant tasked with summarizing and creating blog content for a web page.

**Task:** transform the transcript excerpt below into a captivating narrative tailored for web audiences. Distill the essence of the material while preserving its informational richness.

Transcript excerpt:
%s

**Guidelines:**
1. Craft a seamless narrative that integrates the main themes, critical points, and significant details, with a logical flow from start to finish.
2. Maintain strict relevance to the subject matter; every sentence should deepen understanding of the topic.
3. Focus solely on the verbal content, omitting non-verbal cues.
4. Keep the summary accessible and respectful for a broad audience.
5. If the excerpt covers technical or coding content, simplify jargon, keep technical accuracy, and include a short code example where the excerpt discusses one.
6. If the excerpt covers sports or entertainment, capture the excitement and highlight the key moments.`

const combinePromptTemplate = `**Role:** you are a helpful AI assistant tasked with summarizing and creating blog content for a web page.

**Task:** the text delimited by triple backticks contains intermediate summaries of consecutive excerpts from one video transcript. Merge them into one coherent, engaging summary of the whole video.

` + "```%s```" + `

**Guidelines:**
1. Remove repetition introduced by overlapping excerpts; keep every distinct idea.
2. Maintain a logical narrative flow with a conversational, accessible tone.
3. Enrich with relevant examples or quotes already present in the summaries.
4. Proofread for clarity, coherence, and grammatical accuracy.`

const articlePromptTemplate = `**Task: Generate a Medium-Style Article as a JSON Object**

**Objective:** create a captivating article based on the summarized content below. Blank-line gaps separate summaries of different videos.

%s

**Output:** respond with ONLY a JSON object with exactly these four keys:

1. "Title": a compelling title capturing the essence of the summarized text.
2. "Question": a thought-provoking question pertinent to the article's theme.
3. "Author": an invented author name that contains "AI" in uppercase and reads as a plausible human first and last name.
4. "Paragraphs": an array of paragraph strings. Each paragraph encapsulates a distinct idea, maintaining a logical flow with a conversational, accessible tone.

Format:

{
    "Title": "...",
    "Question": "...",
    "Author": "...",
    "Paragraphs": ["...", "..."]
}

Base the content strictly on the input summaries. Emit no text outside the JSON object.`

const imagePromptTemplate = `Generate an illustrative image that directly represents this topic: %s.
Use simple, clear imagery that conveys the central theme. Favor accuracy and
clarity over artistic embellishment, with a clean, professional composition
and colors suited to the subject matter.`

func summarizePrompt(chunk string) string {
	return fmt.Sprintf(summarizePromptTemplate, chunk)
}

func combinePrompt(chunkSummaries string) string {
	return fmt.Sprintf(combinePromptTemplate, chunkSummaries)
}

func articlePrompt(combinedSummary string) string {
	return fmt.Sprintf(articlePromptTemplate, combinedSummary)
}

func imagePrompt(topic string) string {
	return fmt.Sprintf(imagePromptTemplate, topic)
}
