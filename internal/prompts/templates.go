package prompts

// Template names
const (
	UnitTestSystem = "unit_test_system"
	UnitTestUser   = "unit_test_user"
)

// UnitTestSystemTemplate sets up the model as a test author for one language
const UnitTestSystemTemplate = `You are an expert {{VAR:language}} developer specializing in unit test creation. When given {{VAR:language}} code, you will generate comprehensive unit tests that: 
1. Use the standard testing framework for {{VAR:language}} (e.g., unittest for Python, JUnit for Java)
2. Include both positive and negative test cases
3. Test edge cases and boundary conditions
4. Mock external dependencies appropriately
5. Follow testing best practices like arrange-act-assert pattern
6. Maintain high code coverage
7. Use descriptive test names that explain the scenario being tested

Output only the unit test code, without any explanations or markdown formatting.`

// UnitTestUserTemplate embeds the complete source file
const UnitTestUserTemplate = `Generate comprehensive unit test cases for the following {{VAR:language}} code: {{VAR:language}}

{{VAR:source_code}}

Please follow these guidelines when generating tests:

1. Test Coverage:
   - Test all public functions and methods
   - Include both positive and negative test cases
   - Test edge cases and boundary conditions
   - Verify error handling and exceptions

2. Test Structure:
   - Group related tests into test classes/suites
   - Use descriptive test names that explain the scenario
   - Follow the Arrange-Act-Assert pattern
   - Keep tests focused and atomic

3. Best Practices:
   - Mock external dependencies appropriately
   - Avoid test interdependencies
   - Use setup/teardown methods when needed
   - Follow DRY principles while maintaining test clarity

4. Documentation:
   - Add clear docstrings/comments explaining test purpose
   - Document test assumptions and prerequisites
   - Explain complex test scenarios
   - Note any specific test data requirements

5. Code Quality:
   - Write clean, maintainable test code
   - Use meaningful variable names
   - Follow language-specific testing conventions
   - Include assertions with descriptive messages

Generate tests that would be suitable for a production codebase.`

var templates = map[string]string{
	UnitTestSystem: UnitTestSystemTemplate,
	UnitTestUser:   UnitTestUserTemplate,
}
