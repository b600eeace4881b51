package prompt

// Built-in templates. Each structured-output template embeds its response
// schema and instructs the model to emit nothing but JSON; replies are still
// validated field by field after parsing.

const keywordsPromptTemplate = `Extract the most important search keywords from the task description below.

Return ONLY a comma-separated list of keywords, lowercase, with no numbering,
no preamble, and no explanation. Prefer concrete nouns and verbs that would
appear in a matching task's title or notes. Omit filler words.

Example:
Input: "find the task about fixing the login page before the demo"
Output: login page, fix, demo

Description: {{description}}`

const datePromptTemplate = `Resolve the date expression below to a concrete calendar date.

Today's date is {{today}}.

Output ONLY valid JSON which complies with the schema given below. Do not include any preamble,
explanation, greeting, or acknowledgment. Start your response directly with the opening brace { and
end with the closing brace }. Your output must exactly follow this schema:

{
  "type": "object",
  "properties": {
    "target_date": {"type": "string", "description": "ISO date, YYYY-MM-DD"},
    "confidence": {"type": "number", "minimum": 0, "maximum": 1},
    "interpretation": {"type": "string"}
  },
  "required": ["target_date", "confidence", "interpretation"],
  "additionalProperties": false
}

Rules:
- Resolve relative expressions against today's date using calendar days.
- confidence reflects how unambiguous the expression is; use low values for vague input.
- If the expression cannot be resolved to a date at all, use confidence 0.

Example:
Input: "the friday before last"
Output:
{"target_date": "2025-03-07", "confidence": 0.8, "interpretation": "friday of the previous week"}

Expression: {{input}}`

const selectionPromptTemplate = `You are selecting the task documents most relevant to a search query.

Query: {{query}}

Candidate documents:
{{candidates}}

Select up to {{max_results}} documents that best match the query.

Output ONLY valid JSON which complies with the schema given below. Do not include any preamble,
explanation, greeting, or acknowledgment. Start your response directly with the opening brace { and
end with the closing brace }. Your output must exactly follow this schema:

{
  "type": "object",
  "properties": {
    "selections": {
      "type": "array",
      "items": {
        "type": "object",
        "properties": {
          "document_id": {"type": "string"},
          "relevance_score": {"type": "number", "minimum": 0, "maximum": 1},
          "justification": {"type": "string"}
        },
        "required": ["document_id", "relevance_score", "justification"],
        "additionalProperties": false
      }
    }
  },
  "required": ["selections"],
  "additionalProperties": false
}

Rules:
- document_id must be copied exactly from a candidate; never invent ids.
- relevance_score is a number from 0 (unrelated) to 1 (exact match).
- justification is one short sentence naming what matched.
- If nothing matches, return "selections": [].
- The JSON must parse without errors; no trailing commas, no extra keys, and no extraneous text outside the object.`
