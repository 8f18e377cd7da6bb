package groq

import "fmt"

// systemPrompt pins the model into converter mode.
const systemPrompt = "You are an expert Classic ASP to C# converter. " +
	"You always follow conversion rules exactly and produce perfect C# code."

// promptTemplate spells out the conversion contract. The rules mirror
// the deterministic table in internal/rules so both paths agree on the
// target shape of the output.
const promptTemplate = `You are a senior software engineer specializing in Classic ASP to C# migration. Convert the following ASP code to modern C# with PERFECT accuracy.

CRITICAL CONVERSION RULES:
1. VARIABLE DECLARATIONS:
   - "Dim x : x = False" → "bool x = false;"
   - "Dim x : x = True" → "bool x = true;"
   - "Dim x : x = 123" → "int x = 123;"
   - "Dim x : x = \"text\"" → "string x = \"text\";"
   - "Dim x" (no assignment) → "string x = \"\";"
   - "Dim a, b, c" → separate lines: "string a = \"\"; string b = \"\"; string c = \"\";"

2. DATA TYPES - DETECT CAREFULLY:
   - False/True values → bool type
   - Numeric values → int type
   - String values → string type
   - No initial value → string type with empty string

3. OPERATORS:
   - " & " → " + " (string concatenation)
   - " <> " → " != " (not equal)
   - " And " → " && "
   - " Or " → " || "
   - "Not " → "!"

4. CONTROL FLOW:
   - "If x Then" → "if (x) {"
   - "ElseIf x Then" → "} else if (x) {"
   - "Else" → "} else {"
   - "End If" → "}"

5. LOOPS:
   - "For i = 1 To 10" → "for (int i = 1; i <= 10; i++) {"
   - "For Each item In collection" → "foreach (var item in collection) {"
   - "Next" → "}"

6. FUNCTIONS:
   - "Function Name(params)" → "public string Name(params) {"
   - "Sub Name(params)" → "public void Name(params) {"
   - "End Function/Sub" → "}"

7. STRING FUNCTIONS:
   - "Len(x)" → "x.Length"
   - "UCase(x)" → "x.ToUpper()"
   - "LCase(x)" → "x.ToLower()"
   - "Replace(x, \"a\", \"b\")" → "x.Replace(\"a\", \"b\")"
   - "Trim(x)" → "x.Trim()"

8. WEB OBJECTS:
   - "Response.Write x" → "Response.Write(x);"
   - "Request.QueryString(\"id\")" → "Request.QueryString[\"id\"]"
   - "Request.Form(\"name\")" → "Request.Form[\"name\"]"
   - "Session(\"user\")" → "Session[\"user\"]"

9. ARRAY FUNCTIONS:
   - "IsArray(x)" → "(x is Array)"
   - "UBound(x)" → "(x.Length - 1)"

10. SYNTAX:
    - Add semicolons to end statements
    - Use proper C# casing
    - Remove ASP delimiters (<%% %%>)

ORIGINAL ASP CODE:
` + "```asp\n%s\n```" + `

Convert to C# following the rules above. Return ONLY the converted C# code, no explanations:`

// buildPrompt renders the user prompt for one source snippet.
func buildPrompt(source string) string {
	return fmt.Sprintf(promptTemplate, source)
}
