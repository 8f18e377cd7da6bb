// Package samples ships small Classic ASP snippets for trying the
// converter without hunting down a legacy codebase first.
package samples

import "sort"

// Sample is one named ASP snippet.
type Sample struct {
	Name  string
	Title string
	Code  string
}

var all = map[string]Sample{
	"basic": {
		Name:  "basic",
		Title: "variable declarations",
		Code: `Dim isBizEvent : isBizEvent = False
Dim isBizEventTarget : isBizEventTarget = False
Dim isPersonEvent : isPersonEvent = False
Dim arrTarget
Dim arrMemberInfo, l_userid, l_userno, l_usertype, l_birthdt`,
	},
	"loop": {
		Name:  "loop",
		Title: "for loop with accumulator",
		Code: `Dim i, total : total = 0
For i = 1 To 10
    total = total + i
    Response.Write "숫자: " & i & ", 합계: " & total & "<br>"
Next
Response.Write "최종 합계: " & total`,
	},
	"function": {
		Name:  "function",
		Title: "function definition and call",
		Code: `Function CalculateAge(birthYear)
    Dim currentYear
    currentYear = Year(Now())
    CalculateAge = currentYear - birthYear
End Function

Dim userAge
userAge = CalculateAge(1990)
Response.Write "나이: " & userAge`,
	},
	"array": {
		Name:  "array",
		Title: "nested conditionals over an array",
		Code: `If GLB_DEVICE = "IOS" Then
    Dim arrShowEvent
    arrShowEvent = SM_FLAG_CODE_TB_SEL_PROC()
    If IsArray(arrShowEvent) Then
        strEventOpenYN = UCase(arrShowEvent(0, 0))
        strIOSVersion = arrShowEvent(1, 0)
        If strEventOpenYN = "N" And GLB_VERSION = strIOSVersion Then
            strEventShowYN = "N"
        End If
    End If
End If`,
	},
}

// Get looks up a sample by name.
func Get(name string) (Sample, bool) {
	s, ok := all[name]
	return s, ok
}

// Names lists the available sample names in sorted order.
func Names() []string {
	names := make([]string, 0, len(all))
	for name := range all {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
