// Package arena implements Styler's dense, index-addressed parse-tree
// storage: structure-of-arrays node records plus per-kind attribute side
// tables.
package arena

import "strconv"

// NodeKind is the closed enumeration of ~80 arena node kinds, grouped by
// grammatical category.
type NodeKind int

const (
	KindInvalid NodeKind = iota

	// Compilation unit / package / import.
	KindCompilationUnit
	KindPackageDeclaration
	KindImportDeclaration
	KindModuleImportDeclaration

	// Type declarations.
	KindClassDeclaration
	KindInterfaceDeclaration
	KindEnumDeclaration
	KindRecordDeclaration
	KindAnnotationTypeDeclaration
	KindEnumConstant
	KindRecordComponent
	KindPermitsClause

	// Members.
	KindMethodDeclaration
	KindConstructorDeclaration
	KindCompactConstructorDeclaration
	KindFieldDeclaration
	KindParameter
	KindReceiverParameter
	KindLocalVariableDeclaration
	KindStaticInitializer
	KindInstanceInitializer
	KindAnnotationTypeElement
	KindTypeParameter

	// Statements.
	KindBlockStatement
	KindIfStatement
	KindWhileStatement
	KindDoWhileStatement
	KindForStatement
	KindEnhancedForStatement
	KindSwitchStatement
	KindSwitchExpressionStatement
	KindSwitchRule
	KindSwitchLabel
	KindTryStatement
	KindCatchClause
	KindResourceSpecification
	KindReturnStatement
	KindThrowStatement
	KindBreakStatement
	KindContinueStatement
	KindSynchronizedStatement
	KindYieldStatement
	KindExpressionStatement
	KindLabeledStatement
	KindEmptyStatement

	// Expressions.
	KindLiteralExpression
	KindIdentifierExpression
	KindCallExpression
	KindFieldAccessExpression
	KindArrayAccessExpression
	KindAssignmentExpression
	KindBinaryExpression
	KindUnaryExpression
	KindPostfixExpression
	KindConditionalExpression
	KindInstanceofExpression
	KindCastExpression
	KindLambdaExpression
	KindMethodReferenceExpression
	KindNewObjectExpression
	KindNewArrayExpression
	KindArrayInitializerExpression
	KindStringTemplateExpression
	KindSwitchExpression
	KindExplicitConstructorInvocation

	// Patterns.
	KindTypePattern
	KindGuardedPattern
	KindRecordPattern
	KindPrimitivePattern

	// Types.
	KindPrimitiveType
	KindClassType
	KindArrayType
	KindParameterizedType
	KindWildcardType
	KindUnionType
	KindIntersectionType
	KindVarType

	// Modifiers and annotations.
	KindModifier
	KindAnnotation
	KindAnnotationArgument

	// Trivia.
	KindLineComment
	KindBlockComment
	KindDocComment
	KindWhitespace

	// Module-info.
	KindModuleDeclaration
	KindRequiresDirective
	KindExportsDirective
	KindOpensDirective
	KindProvidesDirective
	KindUsesDirective

	// A synthetic "missing" node used to replace an unparseable required
	// child during error recovery.
	KindMissing

	kindCount // sentinel; not a real node kind
)

// IsDeclaration reports whether k belongs to the declaration category.
func (k NodeKind) IsDeclaration() bool {
	switch k {
	case KindClassDeclaration, KindInterfaceDeclaration, KindEnumDeclaration,
		KindRecordDeclaration, KindAnnotationTypeDeclaration,
		KindMethodDeclaration, KindConstructorDeclaration,
		KindCompactConstructorDeclaration, KindFieldDeclaration,
		KindLocalVariableDeclaration, KindModuleDeclaration,
		KindPackageDeclaration, KindImportDeclaration,
		KindModuleImportDeclaration:
		return true
	default:
		return false
	}
}

// IsStatement reports whether k belongs to the statement category.
func (k NodeKind) IsStatement() bool {
	switch k {
	case KindBlockStatement, KindIfStatement, KindWhileStatement,
		KindDoWhileStatement, KindForStatement, KindEnhancedForStatement,
		KindSwitchStatement, KindTryStatement, KindReturnStatement,
		KindThrowStatement, KindBreakStatement, KindContinueStatement,
		KindSynchronizedStatement, KindYieldStatement,
		KindExpressionStatement, KindLabeledStatement, KindEmptyStatement:
		return true
	default:
		return false
	}
}

// IsExpression reports whether k belongs to the expression category.
func (k NodeKind) IsExpression() bool {
	switch k {
	case KindLiteralExpression, KindIdentifierExpression, KindCallExpression,
		KindFieldAccessExpression, KindArrayAccessExpression,
		KindAssignmentExpression, KindBinaryExpression, KindUnaryExpression,
		KindPostfixExpression, KindConditionalExpression,
		KindInstanceofExpression, KindCastExpression, KindLambdaExpression,
		KindMethodReferenceExpression, KindNewObjectExpression,
		KindNewArrayExpression, KindArrayInitializerExpression,
		KindStringTemplateExpression, KindSwitchExpression,
		KindExplicitConstructorInvocation:
		return true
	default:
		return false
	}
}

// IsType reports whether k belongs to the type category.
func (k NodeKind) IsType() bool {
	switch k {
	case KindPrimitiveType, KindClassType, KindArrayType,
		KindParameterizedType, KindWildcardType, KindUnionType,
		KindIntersectionType, KindVarType:
		return true
	default:
		return false
	}
}

// IsTrivia reports whether k belongs to the trivia category.
func (k NodeKind) IsTrivia() bool {
	switch k {
	case KindLineComment, KindBlockComment, KindDocComment, KindWhitespace:
		return true
	default:
		return false
	}
}

var kindNames = map[NodeKind]string{
	KindInvalid:                       "Invalid",
	KindCompilationUnit:               "CompilationUnit",
	KindPackageDeclaration:            "PackageDeclaration",
	KindImportDeclaration:             "ImportDeclaration",
	KindModuleImportDeclaration:       "ModuleImportDeclaration",
	KindClassDeclaration:              "ClassDeclaration",
	KindInterfaceDeclaration:          "InterfaceDeclaration",
	KindEnumDeclaration:               "EnumDeclaration",
	KindRecordDeclaration:             "RecordDeclaration",
	KindAnnotationTypeDeclaration:     "AnnotationTypeDeclaration",
	KindEnumConstant:                  "EnumConstant",
	KindRecordComponent:               "RecordComponent",
	KindPermitsClause:                 "PermitsClause",
	KindMethodDeclaration:             "MethodDeclaration",
	KindConstructorDeclaration:        "ConstructorDeclaration",
	KindCompactConstructorDeclaration: "CompactConstructorDeclaration",
	KindFieldDeclaration:              "FieldDeclaration",
	KindParameter:                     "Parameter",
	KindReceiverParameter:             "ReceiverParameter",
	KindLocalVariableDeclaration:      "LocalVariableDeclaration",
	KindStaticInitializer:             "StaticInitializer",
	KindInstanceInitializer:           "InstanceInitializer",
	KindAnnotationTypeElement:         "AnnotationTypeElement",
	KindTypeParameter:                 "TypeParameter",
	KindBlockStatement:                "BlockStatement",
	KindIfStatement:                   "IfStatement",
	KindWhileStatement:                "WhileStatement",
	KindDoWhileStatement:              "DoWhileStatement",
	KindForStatement:                  "ForStatement",
	KindEnhancedForStatement:          "EnhancedForStatement",
	KindSwitchStatement:               "SwitchStatement",
	KindSwitchExpressionStatement:     "SwitchExpressionStatement",
	KindSwitchRule:                    "SwitchRule",
	KindSwitchLabel:                   "SwitchLabel",
	KindTryStatement:                  "TryStatement",
	KindCatchClause:                   "CatchClause",
	KindResourceSpecification:        "ResourceSpecification",
	KindReturnStatement:               "ReturnStatement",
	KindThrowStatement:                "ThrowStatement",
	KindBreakStatement:                "BreakStatement",
	KindContinueStatement:             "ContinueStatement",
	KindSynchronizedStatement:         "SynchronizedStatement",
	KindYieldStatement:                "YieldStatement",
	KindExpressionStatement:           "ExpressionStatement",
	KindLabeledStatement:              "LabeledStatement",
	KindEmptyStatement:                "EmptyStatement",
	KindLiteralExpression:             "LiteralExpression",
	KindIdentifierExpression:          "IdentifierExpression",
	KindCallExpression:                "CallExpression",
	KindFieldAccessExpression:         "FieldAccessExpression",
	KindArrayAccessExpression:         "ArrayAccessExpression",
	KindAssignmentExpression:          "AssignmentExpression",
	KindBinaryExpression:              "BinaryExpression",
	KindUnaryExpression:               "UnaryExpression",
	KindPostfixExpression:             "PostfixExpression",
	KindConditionalExpression:         "ConditionalExpression",
	KindInstanceofExpression:          "InstanceofExpression",
	KindCastExpression:                "CastExpression",
	KindLambdaExpression:              "LambdaExpression",
	KindMethodReferenceExpression:     "MethodReferenceExpression",
	KindNewObjectExpression:           "NewObjectExpression",
	KindNewArrayExpression:            "NewArrayExpression",
	KindArrayInitializerExpression:    "ArrayInitializerExpression",
	KindStringTemplateExpression:      "StringTemplateExpression",
	KindSwitchExpression:              "SwitchExpression",
	KindExplicitConstructorInvocation: "ExplicitConstructorInvocation",
	KindTypePattern:                   "TypePattern",
	KindGuardedPattern:                "GuardedPattern",
	KindRecordPattern:                 "RecordPattern",
	KindPrimitivePattern:              "PrimitivePattern",
	KindPrimitiveType:                 "PrimitiveType",
	KindClassType:                     "ClassType",
	KindArrayType:                     "ArrayType",
	KindParameterizedType:             "ParameterizedType",
	KindWildcardType:                  "WildcardType",
	KindUnionType:                     "UnionType",
	KindIntersectionType:              "IntersectionType",
	KindVarType:                       "VarType",
	KindModifier:                      "Modifier",
	KindAnnotation:                    "Annotation",
	KindAnnotationArgument:            "AnnotationArgument",
	KindLineComment:                   "LineComment",
	KindBlockComment:                  "BlockComment",
	KindDocComment:                    "DocComment",
	KindWhitespace:                    "Whitespace",
	KindModuleDeclaration:             "ModuleDeclaration",
	KindRequiresDirective:             "RequiresDirective",
	KindExportsDirective:              "ExportsDirective",
	KindOpensDirective:                "OpensDirective",
	KindProvidesDirective:             "ProvidesDirective",
	KindUsesDirective:                 "UsesDirective",
	KindMissing:                       "Missing",
}

// String renders k's name for diagnostics; unknown values print numerically.
func (k NodeKind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "NodeKind(" + strconv.Itoa(int(k)) + ")"
}
