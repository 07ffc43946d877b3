package adapters

import (
	"fmt"
	"strings"

	"sculptai-api/domain"
)

const manimSystemPrompt = `You are an expert Manim Community Edition engineer.
You write complete, runnable Python programs for single animation scenes.

Rules:
- Output exactly one class named GeneratedScene extending Scene, with all
  animation logic inside its construct(self) method.
- Start the file with "from manim import *".
- Use only Manim built-ins; never load external images, fonts, SVGs or files.
- Keep every element inside the visible frame and avoid overlapping text.
- Clear or transform previous elements before introducing new ones.
- The scene should run for roughly the time it takes to read the narration.
- Output ONLY the Python code inside a single ` + "```python ... ```" + ` block,
  with no prose before or after it.`

func storyboardPrompt(ideaText string) string {
	return fmt.Sprintf(`You are an expert instructional designer and scriptwriter.
Your task is to take the user's idea and generate a detailed, step-by-step explanatory script.
This script should be broken down into logical scenes. For each scene, provide:
1. A short "scene_title".
2. The "narration" script for that scene.
3. A brief "visual_description" of what should be animated or shown.
Focus on a logical flow that builds understanding.
Output MUST be a valid JSON array of objects, where each object represents a scene and has keys: "scene_title", "narration", "visual_description".
Do not include any text outside of this JSON array, no markdown formatting (like %s), just the raw JSON array itself.

User Idea: %q

JSON Storyboard Output:
`, "```json", ideaText)
}

func sceneProgramPrompt(request domain.SceneGenerationRequest) string {
	var b strings.Builder
	b.WriteString(manimSystemPrompt)
	b.WriteString("\n\n**Current Scene Task:**\n")
	fmt.Fprintf(&b, "This is scene %d of %d in an explanation about %q.\n", request.SceneNumber, request.TotalScenes, request.Topic)
	if request.PreviousSceneContext != "" {
		fmt.Fprintf(&b, "Previous Scene Context (conceptual, re-declare elements if needed): %q\n", request.PreviousSceneContext)
	}
	fmt.Fprintf(&b, "Narration for this scene: %q\n", request.Narration)
	fmt.Fprintf(&b, "Visual description for this scene: %q\n", request.VisualDescription)
	b.WriteString("\nManim Python Code Output (Ensure ONLY the ```python ... ``` block):\n")
	return b.String()
}
