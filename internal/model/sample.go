// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

// SampleIssues returns the issues a fresh data file is seeded with.
func SampleIssues() []Issue {
	return []Issue{
		{
			Statement:   "Java NullPointer",
			Description: "cannot find object",
			Solutions:   []Solution{{Link: "https://stackoverflow.com/", Remark: "remark"}},
			Tags:        []string{"solved"},
		},
		{
			Statement:   "StackOverflow",
			Description: "Cannot run",
			Solutions: []Solution{
				{Link: "https://ivle.nus.edu.sg/v1/workspace.aspx", Remark: "newRemark"},
				{Link: "https://www.wikipedia.org/", Remark: "remark"},
			},
			Tags: []string{"newBug", "notSolved"},
		},
		{
			Statement:   "ArrayIndexOutOfBounds",
			Description: "invalid input",
			Solutions:   []Solution{{Link: "https://www.zhihu.com/", Remark: "solutionIsHere"}},
			Tags:        []string{"notSolved"},
		},
		{
			Statement:   "ClassNotFoundException",
			Description: "WrongPackage",
			Solutions:   []Solution{{Link: "https://stackoverflow.com/", Remark: "This solution is quite simple."}},
			Tags:        []string{"urgent"},
		},
		{
			Statement:   "ExceptionNotHandled",
			Description: "Mistake",
			Solutions: []Solution{
				{Link: "https://www.reddit.com/", Remark: "Not sure about this one."},
				{Link: "https://docs.oracle.com/javase/7/docs/api/overview-summary.html", Remark: "Ask prof tmr."},
			},
			Tags: []string{"solved"},
		},
		{
			Statement:   "UnknownBug",
			Description: "Unknown",
			Solutions:   []Solution{{Link: "https://www.google.com.sg/", Remark: "Ask John to solve."}},
			Tags:        []string{"Dead"},
		},
	}
}
